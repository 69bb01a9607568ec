package services

// ValidationError marks rejected request input. Handlers map it to a
// 400 response; unrecognized errors surface as generic server errors.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }
