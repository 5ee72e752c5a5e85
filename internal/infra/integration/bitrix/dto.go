package bitrix

// LeadFields is the field set of a crm.lead.add call. COMMENTS carries the
// user's message plus the triage footer the pipeline appends.
type LeadFields struct {
	Title    string
	Name     string
	LastName string
	Phone    string
	Email    string
	Comments string
	SourceID string
}

type multiField struct {
	Value     string `json:"VALUE"`
	ValueType string `json:"VALUE_TYPE"`
}

// addLeadRequest mirrors the crm.lead.add.json webhook payload shape.
type addLeadRequest struct {
	Fields addLeadFields     `json:"fields"`
	Params map[string]string `json:"params,omitempty"`
}

type addLeadFields struct {
	Title    string       `json:"TITLE"`
	Name     string       `json:"NAME"`
	LastName string       `json:"LAST_NAME"`
	Phone    []multiField `json:"PHONE,omitempty"`
	Email    []multiField `json:"EMAIL,omitempty"`
	Comments string       `json:"COMMENTS,omitempty"`
	SourceID string       `json:"SOURCE_ID,omitempty"`
}

type addLeadResponse struct {
	Result int `json:"result"`
}
