// Package domain provides the records and errors of the academic profile directory.
package domain

import (
	"slices"
	"strings"
	"time"
)

// CurrentSchemaVersion is stamped on every persisted record.
const CurrentSchemaVersion = 1

// PublicationType classifies a publication.
type PublicationType string

const (
	PublicationTypeArticle    PublicationType = "article"
	PublicationTypeConference PublicationType = "conference"
	PublicationTypeBook       PublicationType = "book"
	PublicationTypeThesis     PublicationType = "thesis"
	PublicationTypeOther      PublicationType = "other"
)

// PublicationTypes lists every supported publication type in label order.
func PublicationTypes() []PublicationType {
	return []PublicationType{
		PublicationTypeArticle,
		PublicationTypeBook,
		PublicationTypeConference,
		PublicationTypeOther,
		PublicationTypeThesis,
	}
}

// IsValidPublicationType reports whether t is one of the supported types.
func IsValidPublicationType(t PublicationType) bool {
	return slices.Contains(PublicationTypes(), t)
}

// Account is a researcher login. Accounts are never mutated after creation.
type Account struct {
	ID            string    `json:"id"`
	Username      string    `json:"username" validate:"required,max=64"`
	PasswordHash  string    `json:"passwordHash"`
	Email         string    `json:"email" validate:"required,email"`
	CreatedAt     time.Time `json:"createdAt"`
	SchemaVersion int       `json:"schemaVersion,omitempty"`
}

// Education is a degree entry embedded in a Profile.
type Education struct {
	Degree      string `json:"degree" validate:"required"`
	Institution string `json:"institution" validate:"required"`
	Year        string `json:"year"`
	Field       string `json:"field,omitempty"`
}

// Contact holds the optional external links of a Profile.
type Contact struct {
	Website       string `json:"website,omitempty" validate:"omitempty,url"`
	ORCID         string `json:"orcid,omitempty"`
	GoogleScholar string `json:"googleScholar,omitempty" validate:"omitempty,url"`
	LinkedIn      string `json:"linkedin,omitempty" validate:"omitempty,url"`
}

// Profile is the public page of a researcher. There is at most one per owner.
type Profile struct {
	ID                string      `json:"id"`
	OwnerID           string      `json:"ownerId" validate:"required"`
	Name              string      `json:"name" validate:"required"`
	Title             string      `json:"title"`
	Affiliation       string      `json:"affiliation"`
	Email             string      `json:"email" validate:"omitempty,email"`
	Bio               string      `json:"bio"`
	Photo             string      `json:"photo,omitempty"`
	ResearchInterests []string    `json:"researchInterests"`
	Education         []Education `json:"education" validate:"dive"`
	Contact           Contact     `json:"contact"`
	SchemaVersion     int         `json:"schemaVersion,omitempty"`
}

// Matches reports whether the lowercase query is a substring of the name,
// title, affiliation or any research interest.
func (p *Profile) Matches(query string) bool {
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.Title), q) ||
		strings.Contains(strings.ToLower(p.Affiliation), q) {
		return true
	}
	for _, interest := range p.ResearchInterests {
		if strings.Contains(strings.ToLower(interest), q) {
			return true
		}
	}
	return false
}

// Publication is a single research output owned by one researcher.
// The id is unique across all owners.
type Publication struct {
	ID            string          `json:"id"`
	OwnerID       string          `json:"ownerId" validate:"required"`
	Title         string          `json:"title" validate:"required"`
	Authors       []string        `json:"authors"`
	Journal       string          `json:"journal,omitempty"`
	Year          int             `json:"year" validate:"gte=1000,lte=9999"`
	Citations     int             `json:"citations" validate:"gte=0"`
	Type          PublicationType `json:"type" validate:"omitempty,pubtype"`
	DOI           string          `json:"doi,omitempty"`
	Link          string          `json:"link,omitempty" validate:"omitempty,url"`
	FileURL       string          `json:"fileUrl,omitempty"`
	Content       string          `json:"content,omitempty"`
	SchemaVersion int             `json:"schemaVersion,omitempty"`
}

// YearCitations is the citation total of one publication year.
type YearCitations struct {
	Year      int `json:"year"`
	Citations int `json:"citations"`
}

// YearCount is the publication count of one publication year.
type YearCount struct {
	Year  int `json:"year"`
	Count int `json:"count"`
}

// TypeCount is the citation total of one publication type.
type TypeCount struct {
	Type  PublicationType `json:"type"`
	Count int             `json:"count"`
}

// Statistics is derived from a publication list and never persisted.
type Statistics struct {
	TotalPublications  int             `json:"totalPublications"`
	TotalCitations     int             `json:"totalCitations"`
	HIndex             int             `json:"hIndex"`
	I10Index           int             `json:"i10Index"`
	CitationsByYear    []YearCitations `json:"citationsByYear"`
	PublicationsByYear []YearCount     `json:"publicationsByYear"`
	CitationsByType    []TypeCount     `json:"citationsByType"`
}
