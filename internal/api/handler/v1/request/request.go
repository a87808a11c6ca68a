package request

// DateLayout is the wire format for every date field.
const DateLayout = "2006-01-02"
