package models

import "time"

// PermissionManage allows creating, editing and deleting services, inputs and workers.
const PermissionManage = "booking.manage"

// FieldType is the kind of an admin-defined booking form input.
type FieldType string

const (
	FieldTypeText          FieldType = "ft_text"
	FieldTypeTextMultiline FieldType = "ft_text_multiline"
	FieldTypeDate          FieldType = "ft_date"
	FieldTypeTime          FieldType = "ft_time"
	FieldTypeCheckbox      FieldType = "ft_checkbox"
)

// FieldTypeLabels holds the human readable name of every FieldType.
var FieldTypeLabels = map[FieldType]string{
	FieldTypeText:          "Text",
	FieldTypeTextMultiline: "Text multi-line",
	FieldTypeDate:          "Date",
	FieldTypeTime:          "Time",
	FieldTypeCheckbox:      "Checkbox",
}

func (f FieldType) Valid() bool {
	_, ok := FieldTypeLabels[f]
	return ok
}

// BookableService is a catalog entry customers can book.
type BookableService struct {
	ID            string    `bson:"id" json:"id"`
	Name          string    `bson:"name" json:"name"` // Unique
	Slug          string    `bson:"slug" json:"slug"` // Unique, assigned once on first save
	Description   string    `bson:"description" json:"description"`
	PriceCents    int64     `bson:"priceCents" json:"priceCents"` // Unit price in the smallest currency unit
	Unit          string    `bson:"unit" json:"unit"`             // Pricing unit label, e.g. "hour"
	ThumbnailURL  string    `bson:"thumbnailUrl,omitempty" json:"thumbnailUrl,omitempty"`
	DaysAvailable []string  `bson:"daysAvailable" json:"daysAvailable"` // Day codes in calendar order
	HourStart     TimeOfDay `bson:"hourStart" json:"hourStart"`
	HourEnd       TimeOfDay `bson:"hourEnd" json:"hourEnd"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Price returns the unit price formatted with two decimals.
func (b BookableService) Price() string {
	return FormatCents(b.PriceCents)
}

// CustomInput is an extra booking form field owned by exactly one service.
type CustomInput struct {
	ID            string    `bson:"id" json:"id"`
	BookableID    string    `bson:"bookableId" json:"bookableId"`
	Label         string    `bson:"label" json:"label"`
	FieldType     FieldType `bson:"fieldType" json:"fieldType"`
	FieldRequired bool      `bson:"fieldRequired" json:"fieldRequired"`
	Position      int       `bson:"position" json:"position"` // Creation order within the service
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time `bson:"updatedAt" json:"updatedAt"`
}
