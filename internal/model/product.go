package model

import (
	"time"

	"mirrow/internal/formatter"
)

// RawProduct is a catalog product as ingested, description still unparsed.
type RawProduct struct {
	ID          string
	ProductID   string
	Handle      string
	Title       string
	SourceURL   string
	Description string
}

// FormattedProduct is a RawProduct after its description went through the
// formatter.
type FormattedProduct struct {
	ID        string
	ProductID string
	Title     string
	Data      formatter.FormattedProductData
	UpdatedAt time.Time
}
