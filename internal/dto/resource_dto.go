package dto

// ListQuery carries the raw listing parameters: q is free text, tags a
// comma separated list matched as "any of".
type ListQuery struct {
	Q    string `query:"q"`
	Tags string `query:"tags"`
}
