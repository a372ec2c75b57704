package document

// Document is the fully laid-out invoice document tree handed to the
// snapshot service. Every layout decision has already been made: which
// sections appear and in which order, all formatted strings, and the exact
// styling tokens. The snapshot service only rasterizes.
//
// The tree contains no timestamps or random values, so rendering the same
// invoice twice yields a structurally identical document.
type Document struct {
	TemplateStyle string `json:"template_style"`
	RenderContext string `json:"render_context"`

	Page    PageStyle    `json:"page"`
	Header  Header       `json:"header"`
	Parties PartiesBlock `json:"parties"`
	Meta    MetaBlock    `json:"meta"`
	Lines   LineTable    `json:"lines"`
	Totals  TotalsBlock  `json:"totals"`
	Footer  FooterBlock  `json:"footer"`
	Layout  LayoutHints  `json:"layout"`
}

// PageStyle carries the density and theming tokens for the whole page.
type PageStyle struct {
	AccentColor string  `json:"accent_color"`
	FontFamily  string  `json:"font_family"`
	FontSizePt  float64 `json:"font_size_pt"`
	PaddingPt   float64 `json:"padding_pt"`
}

// Header is the sender identity block. When no logo is available the sender
// name is rendered as text instead.
type Header struct {
	LogoURL    string `json:"logo_url,omitempty"`
	SenderName string `json:"sender_name"`
	ShowLogo   bool   `json:"show_logo"`
}

// Party is one side of the from/to address block.
type Party struct {
	Name       string `json:"name"`
	Address    string `json:"address,omitempty"`
	City       string `json:"city,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
	Country    string `json:"country,omitempty"`
	Email      string `json:"email,omitempty"`
}

// PartiesBlock is the bidirectional address block. ScaleFactor shrinks the
// block when a long email address would overflow its fixed-width region.
type PartiesBlock struct {
	From        Party   `json:"from"`
	To          Party   `json:"to"`
	ScaleFactor float64 `json:"scale_factor"`
}

// MetaBlock holds the invoice metadata strip: number and dates on the left,
// the sender's registration identifiers right-aligned.
type MetaBlock struct {
	InvoiceNumber string  `json:"invoice_number"`
	InvoiceDate   string  `json:"invoice_date"`
	DueDate       string  `json:"due_date"`
	VATNumber     string  `json:"vat_number,omitempty"`
	KvKNumber     string  `json:"kvk_number,omitempty"`
	IBAN          string  `json:"iban,omitempty"`
	ScaleFactor   float64 `json:"scale_factor"`
}

// LineRow is one formatted row of the line-items table.
type LineRow struct {
	Description string `json:"description"`
	Quantity    string `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	Discount    string `json:"discount,omitempty"`
	Total       string `json:"total"`
}

// LineTable is the line-items table. The discount column only renders when
// at least one line carries a non-zero discount.
type LineTable struct {
	ShowDiscountColumn bool      `json:"show_discount_column"`
	Rows               []LineRow `json:"rows"`
}

// TotalsBlock is the subtotal / VAT / grand total block. AmountScale shrinks
// the amounts when very large totals would overflow their table cells.
type TotalsBlock struct {
	SubtotalLabel string  `json:"subtotal_label"`
	Subtotal      string  `json:"subtotal"`
	VATLabel      string  `json:"vat_label"`
	VATAmount     string  `json:"vat_amount"`
	TotalLabel    string  `json:"total_label"`
	Total         string  `json:"total"`
	AmountScale   float64 `json:"amount_scale"`
}

// FooterBlock is the payment-instructions footer with placeholders already
// substituted.
type FooterBlock struct {
	Text string `json:"text,omitempty"`
}

// LayoutHints are the per-template structural switches a layout strategy
// sets for the rasterizer: section ordering plus template-specific bands.
type LayoutHints struct {
	SectionOrder []string `json:"section_order"`
	HeaderBand   bool     `json:"header_band,omitempty"`
	SidebarLeft  bool     `json:"sidebar_left,omitempty"`
	WaveBand     bool     `json:"wave_band,omitempty"`
	AccentRule   bool     `json:"accent_rule,omitempty"`
}
