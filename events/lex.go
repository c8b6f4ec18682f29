package events

// LexEvent is the request shape sent by Lex bot invocations.
type LexEvent struct {
	MessageVersion    string            `json:"messageVersion"`
	InvocationSource  string            `json:"invocationSource"`
	UserID            string            `json:"userId"`
	InputTranscript   string            `json:"inputTranscript"`
	SessionAttributes map[string]string `json:"sessionAttributes"`
	RequestAttributes map[string]string `json:"requestAttributes"`
	Bot               *LexBot           `json:"bot"`
	OutputDialogMode  string            `json:"outputDialogMode"`
	CurrentIntent     *LexCurrentIntent `json:"currentIntent"`
	DialogAction      *LexDialogAction  `json:"dialogAction"`
}

type LexBot struct {
	Name    string `json:"name"`
	Alias   string `json:"alias"`
	Version string `json:"version"`
}

type LexCurrentIntent struct {
	Name               string                   `json:"name"`
	Slots              map[string]string        `json:"slots"`
	SlotDetails        map[string]LexSlotDetail `json:"slotDetails"`
	ConfirmationStatus string                   `json:"confirmationStatus"`
}

type LexSlotDetail struct {
	Resolutions   []map[string]string `json:"resolutions"`
	OriginalValue string              `json:"originalValue"`
}

type LexDialogAction struct {
	Type             string            `json:"type"`
	FulfillmentState string            `json:"fulfillmentState"`
	Message          map[string]string `json:"message"`
	IntentName       string            `json:"intentName"`
	Slots            map[string]string `json:"slots"`
	SlotToElicit     string            `json:"slotToElicit"`
	ResponseCard     *LexResponseCard  `json:"responseCard"`
}

type LexResponseCard struct {
	Version            int64           `json:"version"`
	ContentType        string          `json:"contentType"`
	GenericAttachments []LexAttachment `json:"genericAttachments"`
}

type LexAttachment struct {
	Title             string              `json:"title"`
	SubTitle          string              `json:"subTitle"`
	ImageURL          string              `json:"imageUrl"`
	AttachmentLinkURL string              `json:"attachmentLinkUrl"`
	Buttons           []map[string]string `json:"buttons"`
}
