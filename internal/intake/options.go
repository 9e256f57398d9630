package intake

// Option is one entry of a choice field's catalogue.
type Option struct {
	Value string
	Label string
	// Premium options are shown with a badge but cannot be chosen.
	Premium bool
	// Disabled options are shown greyed out and cannot be chosen.
	Disabled bool
}

// Selectable reports whether the option may be chosen.
func (o Option) Selectable() bool {
	return !o.Premium && !o.Disabled
}

var (
	industryOptions = []Option{
		{Value: "Finance", Label: "Finance"},
		{Value: "Healthcare", Label: "Healthcare", Premium: true},
		{Value: "Education", Label: "Education", Premium: true},
		{Value: "Technology", Label: "Technology", Premium: true},
		{Value: "Manufacturing", Label: "Manufacturing", Premium: true},
		{Value: "Retail", Label: "Retail", Premium: true},
		{Value: "Energy", Label: "Energy", Premium: true},
	}

	cloudOptions = []Option{
		{Value: "AWS", Label: "Amazon Web Services"},
		{Value: "GCP", Label: "Google Cloud Platform", Premium: true},
		{Value: "Azure", Label: "Microsoft Azure", Premium: true},
		{Value: "Suggest", Label: "Suggest me one", Disabled: true},
	}

	environmentOptions = []Option{
		{Value: "Production", Label: "Production"},
		{Value: "Staging", Label: "Staging", Premium: true},
		{Value: "Development", Label: "Development", Premium: true},
	}
)

// Options returns the catalogue for a choice field, or nil for free-text
// fields.
func Options(f Field) []Option {
	var src []Option
	switch f {
	case FieldIndustry:
		src = industryOptions
	case FieldCloud:
		src = cloudOptions
	case FieldEnvironment:
		src = environmentOptions
	default:
		return nil
	}
	out := make([]Option, len(src))
	copy(out, src)
	return out
}

// LookupOption finds value in the catalogue of f.
func LookupOption(f Field, value string) (Option, bool) {
	for _, o := range Options(f) {
		if o.Value == value {
			return o, true
		}
	}
	return Option{}, false
}
