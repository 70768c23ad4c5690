package dto

// SendOTPRequest starts phone verification
type SendOTPRequest struct {
	Phone string `json:"phone" validate:"required,min=5,max=20" example:"+919999999999"`
}

// SendOTPResponse reports the started verification
type SendOTPResponse struct {
	SID    string `json:"sid" example:"VE0123456789abcdef0123456789abcdef"`
	Status string `json:"status" example:"pending"`
}

// VerifyOTPRequest checks a received code
type VerifyOTPRequest struct {
	Phone string `json:"phone" validate:"required,min=5,max=20" example:"+919999999999"`
	Code  string `json:"code" validate:"required,min=4,max=10" example:"123456"`
}

// VerifyOTPResponse reports an approved verification. A farmer token is issued when
// the phone belongs to a registered farmer.
type VerifyOTPResponse struct {
	Verified     bool   `json:"verified" example:"true"`
	Status       string `json:"status" example:"approved"`
	AccessToken  string `json:"access_token,omitempty" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	TokenType    string `json:"token_type,omitempty" example:"Bearer"`
	ExpiresIn    int    `json:"expires_in,omitempty" example:"86400"`
	SurveyNumber string `json:"survey_number,omitempty" example:"SY-102"`
}
