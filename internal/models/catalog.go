package models

import (
	"time"

	"gorm.io/datatypes"
)

// Availability of an original artwork.
type Availability string

const (
	AvailabilityYes  Availability = "yes"
	AvailabilityNo   Availability = "no"
	AvailabilitySold Availability = "sold"
)

// Artwork is an original piece shown in the gallery and, when ForSale, in the shop.
type Artwork struct {
	ID             uint                        `json:"id" gorm:"primaryKey"`
	Title          string                      `json:"title" gorm:"size:255;not null"`
	Description    *string                     `json:"description" gorm:"type:text"`
	ImageURL       string                      `json:"imageUrl" gorm:"type:text;not null"`
	ImageKey       string                      `json:"imageKey" gorm:"size:512;not null"`
	GalleryImages  datatypes.JSONSlice[string] `json:"galleryImages"`
	Year           *int                        `json:"year"`
	Medium         *string                     `json:"medium" gorm:"size:255"`
	Dimensions     *string                     `json:"dimensions" gorm:"size:255"`
	Available      Availability                `json:"available" gorm:"size:8;not null;default:yes"`
	Featured       bool                        `json:"featured" gorm:"not null;default:false"`
	ForSale        bool                        `json:"forSale" gorm:"not null;default:false;index"`
	Price          *string                     `json:"price" gorm:"size:50"`
	PaypalButtonID *string                     `json:"paypalButtonId" gorm:"type:text"`
	DisplayOrder   int                         `json:"displayOrder" gorm:"not null;default:0;index"`
	CreatedAt      time.Time                   `json:"createdAt"`
	UpdatedAt      time.Time                   `json:"updatedAt"`
}

// Print is a reproduction offered for sale, kept apart from the originals so
// it can carry its own imagery and sizing notes.
type Print struct {
	ID            uint                        `json:"id" gorm:"primaryKey"`
	Title         string                      `json:"title" gorm:"size:255;not null"`
	Description   *string                     `json:"description" gorm:"type:text"`
	ImageURL      string                      `json:"imageUrl" gorm:"type:text;not null"`
	ImageKey      string                      `json:"imageKey" gorm:"size:512;not null"`
	GalleryImages datatypes.JSONSlice[string] `json:"galleryImages"`
	SizeInfo      *string                     `json:"sizeInfo" gorm:"size:255"`
	Price         *string                     `json:"price" gorm:"size:50"`
	Available     bool                        `json:"available" gorm:"not null;index"`
	IsDiptych     bool                        `json:"isDiptych" gorm:"not null;default:false"`
	DisplayOrder  int                         `json:"displayOrder" gorm:"not null;default:0"`
	CreatedAt     time.Time                   `json:"createdAt"`
	UpdatedAt     time.Time                   `json:"updatedAt"`
}

// ArtistInfo is the single-row biography shown on the About page.
type ArtistInfo struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	Name            string    `json:"name" gorm:"size:255;not null"`
	Bio             string    `json:"bio" gorm:"type:text;not null"`
	ProfileImageURL *string   `json:"profileImageUrl" gorm:"type:text"`
	ProfileImageKey *string   `json:"profileImageKey" gorm:"size:512"`
	InstagramHandle *string   `json:"instagramHandle" gorm:"size:100"`
	InstagramURL    *string   `json:"instagramUrl" gorm:"size:255"`
	FacebookURL     *string   `json:"facebookUrl" gorm:"size:255"`
	TwitterURL      *string   `json:"twitterUrl" gorm:"size:255"`
	LinkedinURL     *string   `json:"linkedinUrl" gorm:"size:255"`
	WebsiteURL      *string   `json:"websiteUrl" gorm:"size:255"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// TableName keeps the singular table name used by the existing schema.
func (ArtistInfo) TableName() string {
	return "artist_info"
}
