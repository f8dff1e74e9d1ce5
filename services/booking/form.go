package booking

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"asst/models"
	"asst/utils"
)

// FieldKind is the input widget a form field is rendered with.
type FieldKind string

const (
	KindText      FieldKind = "text"
	KindMultiline FieldKind = "multiline"
	KindDate      FieldKind = "date"
	KindTime      FieldKind = "time"
	KindBoolean   FieldKind = "boolean"
	KindInteger   FieldKind = "integer"
)

// Names of the fields every booking form starts with.
const (
	FieldAddress  = "address"
	FieldDate     = "selected_date"
	FieldTime     = "selected_time"
	FieldQuantity = "quantity"
)

const requiredMessage = "This field is required."

// MaxQuantity caps the number of units in one booking.
const MaxQuantity = 999

// FormField describes one input of a booking form.
type FormField struct {
	Name     string           `json:"name"`
	Label    string           `json:"label"`
	Kind     FieldKind        `json:"kind"`
	Required bool             `json:"required"`
	Default  string           `json:"default,omitempty"`
	Layout   string           `json:"layout,omitempty"`
	Source   models.FieldType `json:"fieldType"`
}

// Form is the ordered field list for booking one service.
type Form struct {
	Fields []FormField `json:"fields"`
}

// Answer is a cleaned value of one field.
type Answer struct {
	Field FormField
	Value any
}

// Display renders the value the way it appears in a booking summary.
func (a Answer) Display() string {
	switch v := a.Value.(type) {
	case nil:
		return ""
	case time.Time:
		return v.Format(models.DateInputLayout)
	case models.TimeOfDay:
		return v.String()
	case bool:
		if v {
			return "Yes"
		}
		return "No"
	case int:
		return strconv.Itoa(v)
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

// Answers holds the cleaned values of a bound form. The fixed fields are also
// exposed directly.
type Answers struct {
	Address  string
	Date     time.Time
	Time     models.TimeOfDay
	Quantity int
	Values   []Answer
}

type fieldConstructor func(label string, required bool) FormField

// customFieldConstructors maps each admin field type to the form field it produces.
var customFieldConstructors = map[models.FieldType]fieldConstructor{
	models.FieldTypeText: func(label string, required bool) FormField {
		return FormField{Label: label, Kind: KindText, Required: required}
	},
	models.FieldTypeTextMultiline: func(label string, required bool) FormField {
		return FormField{Label: label, Kind: KindMultiline, Required: required}
	},
	models.FieldTypeDate: func(label string, required bool) FormField {
		return FormField{Label: label, Kind: KindDate, Required: required, Layout: models.DateInputLayout}
	},
	models.FieldTypeTime: func(label string, required bool) FormField {
		return FormField{Label: label, Kind: KindTime, Required: required, Layout: models.TimeInputLayout}
	},
	models.FieldTypeCheckbox: func(label string, required bool) FormField {
		return FormField{Label: label, Kind: KindBoolean, Required: required}
	},
}

// QuantityLabel pluralises the unit unless it already ends in "s".
func QuantityLabel(unit string) string {
	if strings.HasSuffix(unit, "s") {
		return "Number of " + unit
	}
	return "Number of " + unit + "s"
}

// BuildForm assembles the booking form of svc: address, date, time and
// quantity first, then one field per custom input in the given order.
// Inputs of an unknown type are skipped.
func BuildForm(svc *models.BookableService, inputs []models.CustomInput) *Form {
	fields := []FormField{
		{
			Name: FieldAddress, Label: "Service Address", Kind: KindText,
			Required: true, Source: models.FieldTypeText,
		},
		{
			Name: FieldDate, Label: "Select a start date", Kind: KindDate,
			Required: true, Layout: models.DateInputLayout, Source: models.FieldTypeDate,
		},
		{
			Name: FieldTime, Label: "Choose a time", Kind: KindTime,
			Required: true, Layout: models.TimeInputLayout, Source: models.FieldTypeTime,
		},
		{
			Name: FieldQuantity, Label: QuantityLabel(svc.Unit), Kind: KindInteger,
			Required: true, Default: "1", Source: models.FieldTypeText,
		},
	}

	for i, input := range inputs {
		construct, ok := customFieldConstructors[input.FieldType]
		if !ok {
			continue
		}
		label := input.Label
		if !input.FieldRequired {
			label += " (optional)"
		}
		field := construct(label, input.FieldRequired)
		field.Name = fmt.Sprintf("custom_input_%d", i)
		field.Source = input.FieldType
		fields = append(fields, field)
	}
	return &Form{Fields: fields}
}

// Bind validates raw submitted values against the form. Every field is
// checked; the returned FieldErrors is empty when the submission is valid.
func (f *Form) Bind(values map[string]string) (*Answers, utils.FieldErrors) {
	errs := utils.FieldErrors{}
	answers := &Answers{Values: make([]Answer, 0, len(f.Fields))}

	for _, field := range f.Fields {
		value, msg := cleanField(field, values[field.Name])
		if msg != "" {
			errs.Add(field.Name, msg)
			continue
		}
		answers.Values = append(answers.Values, Answer{Field: field, Value: value})

		switch field.Name {
		case FieldAddress:
			answers.Address = value.(string)
		case FieldDate:
			answers.Date = value.(time.Time)
		case FieldTime:
			answers.Time = value.(models.TimeOfDay)
		case FieldQuantity:
			answers.Quantity = value.(int)
		}
	}
	if !errs.Empty() {
		return nil, errs
	}
	return answers, errs
}

func cleanField(field FormField, raw string) (any, string) {
	raw = strings.TrimSpace(raw)

	if field.Kind == KindBoolean {
		checked := parseCheckbox(raw)
		if field.Required && !checked {
			return nil, requiredMessage
		}
		return checked, ""
	}

	if raw == "" {
		if field.Required {
			return nil, requiredMessage
		}
		if field.Kind == KindText || field.Kind == KindMultiline {
			return "", ""
		}
		return nil, ""
	}

	switch field.Kind {
	case KindDate:
		d, err := time.ParseInLocation(models.DateInputLayout, raw, time.Local)
		if err != nil {
			return nil, "Enter a valid date."
		}
		return d, ""
	case KindTime:
		t, err := models.ParseTimeOfDay(raw)
		if err != nil {
			return nil, "Enter a valid time."
		}
		return t, ""
	case KindInteger:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, "Enter a whole number."
		}
		if n < 1 {
			return nil, "Ensure this value is greater than or equal to 1."
		}
		if n > MaxQuantity {
			return nil, fmt.Sprintf("Ensure this value is less than or equal to %d.", MaxQuantity)
		}
		return n, ""
	default:
		return raw, ""
	}
}

func parseCheckbox(raw string) bool {
	switch strings.ToLower(raw) {
	case "", "false", "off", "0", "no":
		return false
	default:
		return true
	}
}
