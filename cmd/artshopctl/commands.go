package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/olekukonko/tablewriter"
	"github.com/streadway/amqp"
	"gorm.io/gorm"

	"artshop/internal/config"
	"artshop/internal/database"
	"artshop/internal/models"
	"artshop/internal/repositories"
	"artshop/internal/services"
	"artshop/pkg/rabbitmq"
)

// openDB loads configuration and returns a migrated connection.
func openDB() (*config.Config, *gorm.DB, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}
	db, err := database.Open(cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		return nil, nil, nil, err
	}
	closeDB := func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}
	if err := database.Migrate(db); err != nil {
		closeDB()
		return nil, nil, nil, err
	}
	return cfg, db, closeDB, nil
}

func migrateCmd(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("migrate", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, _, closeDB, err := openDB()
	if err != nil {
		return err
	}
	defer closeDB()
	fmt.Fprintf(out, "Database migrated (%s)\n", cfg.DBDriver)
	return nil
}

func strPtr(s string) *string { return &s }

var sampleArtist = models.ArtistInfo{
	Name: "Benjamin Thomas",
	Bio: "Benjamin Thomas is a contemporary artist whose work explores the intersection of form, color, and emotion. " +
		"Through a unique visual language, Benjamin creates pieces that invite viewers to pause and reflect on the beauty found in everyday moments.",
	InstagramHandle: strPtr("__benjaminthomas"),
	InstagramURL:    strPtr("https://instagram.com/__benjaminthomas"),
}

var samplePrints = []models.Print{
	{
		Title: "Candyflip", ImageURL: "/images/prints/candyflip.jpg", ImageKey: "prints/candyflip.jpg",
		SizeInfo: strPtr("30x40cm to 100x120cm"), Price: strPtr("£125"), Available: true, DisplayOrder: 1,
	},
	{
		Title: "Chrysalis", ImageURL: "/images/prints/chrysalis.jpg", ImageKey: "prints/chrysalis.jpg",
		SizeInfo: strPtr("30x40cm to 60x80cm"), Price: strPtr("£95"), Available: true, DisplayOrder: 2,
	},
	{
		Title: "Tidal Diptych", ImageURL: "/images/prints/tidal.jpg", ImageKey: "prints/tidal.jpg",
		SizeInfo: strPtr("2 × 50x70cm"), Price: strPtr("£220"), Available: true, IsDiptych: true, DisplayOrder: 3,
	},
}

// seedCmd writes the artist profile and, when no prints exist yet, the
// sample prints. Running it twice does not duplicate prints.
func seedCmd(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	_, db, closeDB, err := openDB()
	if err != nil {
		return err
	}
	defer closeDB()
	ctx := context.Background()

	artist := sampleArtist
	if err := repositories.NewGORMArtistRepository(db).SaveInfo(ctx, &artist); err != nil {
		return fmt.Errorf("failed to seed artist info: %w", err)
	}
	fmt.Fprintln(out, "✓ Artist info seeded")

	prints := repositories.NewGORMPrintRepository(db)
	existing, err := prints.GetAvailable(ctx)
	if err != nil {
		return fmt.Errorf("failed to read prints: %w", err)
	}
	if len(existing) > 0 {
		fmt.Fprintf(out, "Prints already present (%d), skipping\n", len(existing))
		return nil
	}
	for i := range samplePrints {
		p := samplePrints[i]
		if err := prints.Create(ctx, &p); err != nil {
			return fmt.Errorf("failed to seed print %q: %w", p.Title, err)
		}
	}
	fmt.Fprintf(out, "✓ %d prints seeded\n", len(samplePrints))
	return nil
}

func ordersCmd(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("orders", flag.ContinueOnError)
	status := fs.String("status", "", "only show orders with this status")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *status != "" && !models.OrderStatus(*status).Valid() {
		return fmt.Errorf("unknown status %q", *status)
	}
	_, db, closeDB, err := openDB()
	if err != nil {
		return err
	}
	defer closeDB()

	orders, err := repositories.NewGORMOrderRepository(db).GetAll(context.Background())
	if err != nil {
		return err
	}
	return renderOrders(out, orders, models.OrderStatus(*status))
}

func renderOrders(out io.Writer, orders []models.Order, status models.OrderStatus) error {
	table := tablewriter.NewWriter(out)
	table.Header("ID", "Ref", "Placed", "Buyer", "Item", "Zone", "Total", "Status")
	for _, o := range orders {
		if status != "" && o.Status != status {
			continue
		}
		if err := table.Append([]string{
			fmt.Sprint(o.ID),
			o.OrderRef,
			o.CreatedAt.Format("2006-01-02 15:04"),
			o.BuyerName,
			o.ItemTitle,
			o.ShippingZone,
			o.Price,
			string(o.Status),
		}); err != nil {
			return err
		}
	}
	return table.Render()
}

// setStatusCmd goes through OrderService so the change is published like an
// admin update from the API.
func setStatusCmd(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("set-status", flag.ContinueOnError)
	id := fs.Uint("id", 0, "order id")
	status := fs.String("status", "", "new status (pending, paid, shipped, delivered, cancelled)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == 0 || *status == "" {
		fs.PrintDefaults()
		return errors.New("-id and -status are required")
	}
	cfg, db, closeDB, err := openDB()
	if err != nil {
		return err
	}
	defer closeDB()

	deps := services.OrderDeps{Orders: repositories.NewGORMOrderRepository(db), RefPrefix: cfg.OrderRefPrefix}
	if cfg.RabbitMQURL != "" {
		mq, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			fmt.Fprintf(out, "Warning: not publishing event: %v\n", err)
		} else {
			defer mq.Close()
			deps.Events = mq
		}
	}

	if err := services.NewOrderService(deps).UpdateStatus(context.Background(), *id, models.OrderStatus(*status)); err != nil {
		return err
	}
	fmt.Fprintf(out, "Order %d is now %s\n", *id, *status)
	return nil
}

func eventsCmd(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("events", flag.ContinueOnError)
	url := fs.String("url", os.Getenv("RABBITMQ_URL"), "AMQP URL")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *url == "" {
		return errors.New("RABBITMQ_URL or -url is required")
	}
	mq, err := rabbitmq.NewClient(rabbitmq.Config{URL: *url})
	if err != nil {
		return err
	}
	defer mq.Close()

	if err := mq.ConsumeOrderEvents(printEvent(out)); err != nil {
		return err
	}
	fmt.Fprintf(out, "Waiting for events on %s, Ctrl+C to stop\n", rabbitmq.QueueOrders)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	return nil
}

// printEvent writes one line per order event. Undecodable messages are
// returned as errors so the consumer requeues them once.
func printEvent(out io.Writer) func(amqp.Delivery) error {
	return func(msg amqp.Delivery) error {
		ev, err := rabbitmq.DecodeOrderEvent(msg.Body)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(out, "%s  %-22s %s  order=%d status=%s total=%s\n",
			ev.OccurredAt.Format("2006-01-02 15:04:05"), ev.Type, ev.OrderRef, ev.OrderID, ev.Status, ev.Total)
		return err
	}
}
