package internal

import "fmt"

type ItemSource string

const (
	SourceXLSX           ItemSource = "xlsx"
	SourceSpreadsheetXML ItemSource = "spreadsheet_xml"
)

// RawItem is one unnormalized takeoff record as produced by an
// extraction front-end. Fields may be absent, stored under alternate
// names, or malformed; nothing here is trusted until it passes through
// pipeline.ComputeLine.
type RawItem struct {
	LineNo int
	Source ItemSource
	Fields map[string]string
}

// Field returns the first non-empty value among the given field names.
func (r RawItem) Field(names ...string) string {
	for _, name := range names {
		if v, ok := r.Fields[name]; ok && v != "" {
			return v
		}
	}
	return ""
}

// NormalizedLine is the canonical, reconciled form of one RawItem.
// LineTotal is always UnitPrice*Quantity recomputed after
// reconciliation, never the raw stated total.
type NormalizedLine struct {
	Name      string
	Quantity  float64
	UnitCost  float64
	UnitPrice float64
	LineTotal float64
	IsLabour  bool
}

type ValidationProblem struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

func (p ValidationProblem) String() string {
	return fmt.Sprintf("Row %d: %s", p.Row, p.Message)
}

// LineItem is the wire shape of one quote line. IsLabour and
// SalesAccountID are mutually exclusive: labour lines carry
// isLabour:true and no sales account, everything else the reverse.
type LineItem struct {
	ItemName       string  `json:"itemName"`
	ItemQuantity   float64 `json:"itemQuantity"`
	ItemPrice      float64 `json:"itemPrice"`
	ItemCost       float64 `json:"itemCost"`
	DiscountRate   float64 `json:"discountRate"`
	SortOrder      int     `json:"sortOrder"`
	IsLabour       bool    `json:"isLabour,omitempty"`
	SalesAccountID int     `json:"salesAccountId,omitempty"`
}

type Section struct {
	Name                      string     `json:"name"`
	Description               string     `json:"description"`
	SortOrder                 int        `json:"sortOrder"`
	SectionLineItemMultiplier int        `json:"sectionLineItemMultiplier"`
	ParentSectionID           int        `json:"parentSectionId"`
	LineItems                 []LineItem `json:"lineItems"`
	Sections                  []Section  `json:"sections"`
}

type QuotePayload struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDays     int       `json:"dueDays"`
	Sections    []Section `json:"sections"`
}

type JobDetails struct {
	ID            int
	JobNo         string
	Description   string
	Customer      string
	QuoteAccepted bool
}

type QuoteSummary struct {
	ID            int
	VersionNumber int
	IsAccepted    bool
	IsSent        bool
	LastModified  string
}

type PushAction string

const (
	PushCreated PushAction = "created"
	PushUpdated PushAction = "updated"
	PushFailed  PushAction = "failed"
)

type PushResult struct {
	Action  PushAction
	JobID   int
	JobNo   string
	QuoteID int
	WebURL  string
}

type BatchRow struct {
	ID        int
	Source    string
	FileName  string
	JobHint   string
	ItemCount int
	CreatedAt string
}

type PushRow struct {
	ID        int
	BatchID   int
	JobNo     string
	JobID     int
	QuoteID   int
	Action    string
	Title     string
	CreatedAt string
}
