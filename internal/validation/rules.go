package validation

// Form field names shared by the handlers and the templates.
const (
	FieldName        = "name"
	FieldDescription = "description"
	FieldCategory    = "category"
	FieldPrice       = "price"
	FieldInStock     = "inStock"
	FieldImage       = "image"
)

// Messages for checks that live outside the rule tables.
const (
	MsgImageRequired   = "Image must be uploaded."
	MsgUnknownCategory = "Selected category does not exist."
	MsgPricePrecision  = "Price must have at most 15 digits before and 4 after the decimal point."
)

// CategoryRules validates category create and update submissions.
var CategoryRules = Schema{
	{
		Name: FieldName, Trim: true, Escape: true,
		Rules: []Rule{{Tag: "min=3", Message: "Category name must be at least 3 characters."}},
	},
	{
		Name: FieldDescription, Trim: true, Escape: true,
		Rules: []Rule{{Tag: "min=3", Message: "Category description must be at least 3 characters."}},
	},
}

// ItemRules validates item create and update submissions.
var ItemRules = Schema{
	{
		Name: FieldName, Trim: true, Escape: true,
		Rules: []Rule{
			{Tag: "min=3", Message: "Item name must be at least 3 characters."},
			{Tag: "max=100", Message: "Item name must be at most 100 characters."},
		},
	},
	{
		Name: FieldDescription, Trim: true, Escape: true,
		Rules: []Rule{{Tag: "min=3", Message: "Item description must be at least 3 characters."}},
	},
	{
		Name: FieldCategory, Trim: true, Escape: true,
		Rules: []Rule{{Tag: "required", Message: "Category must be specified."}},
	},
	{
		Name: FieldPrice,
		Rules: []Rule{
			{Tag: "isnumeric", Message: "Number must be specified"},
			{Tag: "price", Message: MsgPricePrecision},
		},
	},
	{
		Name:  FieldInStock,
		Rules: []Rule{{Tag: "isnumeric", Message: "Number must be specified"}},
	},
}
