package validation

import (
	"encoding/json"
	"errors"
	"fmt"

	"forumapi/internal/models"
)

// Validation kinds. Every payload error wraps exactly one of them.
var (
	ErrMissingProperty = errors.New("missing required property")
	ErrWrongType       = errors.New("wrong data type")
)

// Payload is a decoded JSON object whose field types are not yet trusted.
type Payload map[string]interface{}

// DecodePayload parses a JSON request body. An empty body is an empty payload.
func DecodePayload(body []byte) (Payload, error) {
	p := Payload{}
	if len(body) == 0 {
		return p, nil
	}
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, models.NewValidationError("request body must be a JSON object")
	}
	return p, nil
}

// strings extracts the named fields. All fields are checked for presence
// before any is checked for type.
func (p Payload) strings(subject string, names ...string) ([]string, error) {
	for _, name := range names {
		v, ok := p[name]
		if !ok || v == nil || v == "" {
			return nil, models.NewValidationErrorWithCause(
				fmt.Sprintf("cannot create %s because a required property is missing", subject), ErrMissingProperty)
		}
	}

	out := make([]string, len(names))
	for i, name := range names {
		s, ok := p[name].(string)
		if !ok {
			return nil, models.NewValidationErrorWithCause(
				fmt.Sprintf("cannot create %s because the data type does not match", subject), ErrWrongType)
		}
		out[i] = s
	}
	return out, nil
}

// NewThread validates a thread payload.
func NewThread(p Payload, owner string) (models.NewThread, error) {
	fields, err := p.strings("a new thread", "title", "body")
	if err != nil {
		return models.NewThread{}, err
	}
	return models.NewThread{Title: fields[0], Body: fields[1], Owner: owner}, nil
}

// NewComment validates a comment payload.
func NewComment(p Payload, threadID, owner string) (models.NewComment, error) {
	fields, err := p.strings("a new comment", "content")
	if err != nil {
		return models.NewComment{}, err
	}
	return models.NewComment{Content: fields[0], ThreadID: threadID, Owner: owner}, nil
}

// NewReply validates a reply payload.
func NewReply(p Payload, commentID, owner string) (models.NewReply, error) {
	fields, err := p.strings("a new reply", "content")
	if err != nil {
		return models.NewReply{}, err
	}
	return models.NewReply{Content: fields[0], CommentID: commentID, Owner: owner}, nil
}

// RegisterUser validates a registration payload including username and password rules.
func RegisterUser(p Payload) (models.RegisterUser, error) {
	fields, err := p.strings("a new user", "username", "password", "fullname")
	if err != nil {
		return models.RegisterUser{}, err
	}
	if err := ValidateUsername(fields[0]); err != nil {
		return models.RegisterUser{}, models.NewValidationError(err.Error())
	}
	if err := ValidatePassword(fields[1]); err != nil {
		return models.RegisterUser{}, models.NewValidationError(err.Error())
	}
	return models.RegisterUser{Username: fields[0], Password: fields[1], Fullname: fields[2]}, nil
}

// UserLogin validates a login payload.
func UserLogin(p Payload) (models.UserLogin, error) {
	fields, err := p.strings("a login session", "username", "password")
	if err != nil {
		return models.UserLogin{}, err
	}
	return models.UserLogin{Username: fields[0], Password: fields[1]}, nil
}

// RefreshToken validates the refresh and logout payloads.
func RefreshToken(p Payload) (string, error) {
	v, ok := p["refreshToken"]
	if !ok || v == nil || v == "" {
		return "", models.NewValidationErrorWithCause("must include refresh token", ErrMissingProperty)
	}
	token, ok := v.(string)
	if !ok {
		return "", models.NewValidationErrorWithCause("refresh token must be a string", ErrWrongType)
	}
	return token, nil
}
