package dto

// TemplateMail is a transactional mail rendered from a template file before delivery.
type TemplateMail struct {
	To       string         `json:"to" validate:"required,email"`
	Subject  string         `json:"subject" validate:"required"`
	Text     string         `json:"text,omitempty"`
	Template string         `json:"template" validate:"required"`
	Data     map[string]any `json:"data,omitempty"`
	// BaseURL overrides the configured base_url template variable.
	BaseURL string `json:"base_url,omitempty" validate:"omitempty,url"`
}

type MailRecipient struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name,omitempty"`
	Type  string `json:"type,omitempty" validate:"omitempty,oneof=to cc bcc"`
}

// MailVar is a merge variable.
type MailVar struct {
	Name    string `json:"name" validate:"required"`
	Content any    `json:"content"`
}

type MailRecipientVars struct {
	Rcpt string    `json:"rcpt" validate:"required,email"`
	Vars []MailVar `json:"vars" validate:"dive"`
}

type MailRecipientMetadata struct {
	Rcpt   string            `json:"rcpt" validate:"required,email"`
	Values map[string]string `json:"values"`
}

// MailAttachment content is base64 encoded. Images use Name as the Content-ID.
type MailAttachment struct {
	Type    string `json:"type" validate:"required"`
	Name    string `json:"name" validate:"required"`
	Content string `json:"content" validate:"required,base64"`
}

// MailMessage mirrors the delivery provider's message schema without the sender,
// which is always set by the mail service.
type MailMessage struct {
	To      []MailRecipient   `json:"to" validate:"required,min=1,dive"`
	Subject string            `json:"subject,omitempty"`
	HTML    string            `json:"html,omitempty" validate:"required_without=Text"`
	Text    string            `json:"text,omitempty" validate:"required_without=HTML"`
	Headers map[string]string `json:"headers,omitempty"`

	Important          bool   `json:"important,omitempty"`
	TrackOpens         *bool  `json:"track_opens,omitempty"`
	TrackClicks        *bool  `json:"track_clicks,omitempty"`
	AutoText           *bool  `json:"auto_text,omitempty"`
	AutoHTML           *bool  `json:"auto_html,omitempty"`
	InlineCSS          *bool  `json:"inline_css,omitempty"`
	URLStripQS         *bool  `json:"url_strip_qs,omitempty"`
	PreserveRecipients *bool  `json:"preserve_recipients,omitempty"`
	ViewContentLink    *bool  `json:"view_content_link,omitempty"`
	BCCAddress         string `json:"bcc_address,omitempty" validate:"omitempty,email"`
	TrackingDomain     string `json:"tracking_domain,omitempty"`
	SigningDomain      string `json:"signing_domain,omitempty"`
	ReturnPathDomain   string `json:"return_path_domain,omitempty"`

	Merge           *bool               `json:"merge,omitempty"`
	MergeLanguage   string              `json:"merge_language,omitempty" validate:"omitempty,oneof=mailchimp handlebars"`
	GlobalMergeVars []MailVar           `json:"global_merge_vars,omitempty" validate:"dive"`
	MergeVars       []MailRecipientVars `json:"merge_vars,omitempty" validate:"dive"`

	Tags                    []string                `json:"tags,omitempty"`
	Subaccount              string                  `json:"subaccount,omitempty"`
	GoogleAnalyticsDomains  []string                `json:"google_analytics_domains,omitempty"`
	GoogleAnalyticsCampaign string                  `json:"google_analytics_campaign,omitempty"`
	Metadata                map[string]string       `json:"metadata,omitempty"`
	RecipientMetadata       []MailRecipientMetadata `json:"recipient_metadata,omitempty" validate:"dive"`

	Attachments []MailAttachment `json:"attachments,omitempty" validate:"dive"`
	Images      []MailAttachment `json:"images,omitempty" validate:"dive"`

	// Delivery options travel beside the message, not inside it.
	Async  bool   `json:"-"`
	IPPool string `json:"-"`
	SendAt string `json:"-"`
}

// MailSendResult is the provider's verdict for one recipient.
type MailSendResult struct {
	Email        string `json:"email"`
	Status       string `json:"status"`
	RejectReason string `json:"reject_reason,omitempty"`
	QueuedReason string `json:"queued_reason,omitempty"`
	ID           string `json:"_id,omitempty"`
}
