package model

import (
	"strings"

	"gorm.io/gorm"
)

type ContactType string

const (
	ContactPhone     ContactType = "PHONE"
	ContactEmail     ContactType = "EMAIL"
	ContactWebsite   ContactType = "WEBSITE"
	ContactInstagram ContactType = "INSTAGRAM"
	ContactFacebook  ContactType = "FACEBOOK"
	ContactTwitter   ContactType = "TWITTER"
)

type Cafe struct {
	gorm.Model
	Name          string        `json:"name"`
	City          string        `json:"city"`
	District      string        `json:"district"`
	CityKey       string        `json:"-" gorm:"index"`
	DistrictKey   string        `json:"-" gorm:"index"`
	Category      string        `json:"category"`
	Description   string        `json:"description"`
	GoogleMapsURL string        `json:"google_maps_url"`
	Images        []Image       `json:"images" gorm:"foreignKey:CafeID;constraint:OnDelete:CASCADE"`
	ContactInfos  []ContactInfo `json:"contact_infos" gorm:"foreignKey:CafeID;constraint:OnDelete:CASCADE"`
	Ratings       []Rating      `json:"ratings" gorm:"foreignKey:CafeID;constraint:OnDelete:CASCADE"`
	Comments      []Comment     `json:"comments" gorm:"foreignKey:CafeID;constraint:OnDelete:CASCADE"`
	Favorites     []Favorite    `json:"favorites" gorm:"foreignKey:CafeID;constraint:OnDelete:CASCADE"`
}

type Image struct {
	gorm.Model
	CafeID uint   `json:"cafe_id"`
	URL    string `json:"url"`
}

type ContactInfo struct {
	gorm.Model
	CafeID uint        `json:"cafe_id"`
	Type   ContactType `json:"type"`
	Value  string      `json:"value"`
}

// BeforeSave keeps the case-folded location keys in sync with the stored
// city and district. Folding happens here rather than in SQL because
// SQLite's LOWER() only folds ASCII, which breaks matching on Turkish
// place names.
func (c *Cafe) BeforeSave(*gorm.DB) error {
	c.CityKey = strings.ToLower(c.City)
	c.DistrictKey = strings.ToLower(c.District)
	return nil
}

// LocationKey folds a city or district query parameter the same way the
// stored keys are folded.
func LocationKey(s string) string {
	return strings.ToLower(s)
}

// ContactMap builds a type-to-value lookup from the loaded contact infos.
// The first entry of each type wins.
func (c *Cafe) ContactMap() map[ContactType]string {
	m := make(map[ContactType]string, len(c.ContactInfos))
	for _, info := range c.ContactInfos {
		if _, ok := m[info.Type]; !ok {
			m[info.Type] = info.Value
		}
	}
	return m
}
