package validation

import (
	"testing"

	"forumapi/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, body string) Payload {
	t.Helper()
	p, err := DecodePayload([]byte(body))
	require.NoError(t, err)
	return p
}

func TestDecodePayload(t *testing.T) {
	t.Parallel()

	p, err := DecodePayload(nil)
	require.NoError(t, err)
	assert.Empty(t, p)

	_, err = DecodePayload([]byte("not json"))
	assert.True(t, models.IsCode(err, models.CodeValidation))

	_, err = DecodePayload([]byte(`["array"]`))
	assert.Error(t, err)
}

func TestNewThread(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		body    string
		wantErr error
	}{
		{"valid", `{"title":"sebuah thread","body":"isi body thread"}`, nil},
		{"missing body", `{"title":"sebuah thread"}`, ErrMissingProperty},
		{"empty title", `{"title":"","body":"x"}`, ErrMissingProperty},
		{"null title", `{"title":null,"body":"x"}`, ErrMissingProperty},
		{"numeric title", `{"title":123,"body":"x"}`, ErrWrongType},
		{"boolean body", `{"title":"x","body":true}`, ErrWrongType},
		{"missing wins over wrong type", `{"title":123}`, ErrMissingProperty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewThread(decode(t, tt.body), "user-123")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.True(t, models.IsCode(err, models.CodeValidation))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, models.NewThread{Title: "sebuah thread", Body: "isi body thread", Owner: "user-123"}, got)
		})
	}
}

func TestNewCommentAndReply(t *testing.T) {
	t.Parallel()

	comment, err := NewComment(decode(t, `{"content":"sebuah comment"}`), "thread-1", "user-1")
	require.NoError(t, err)
	assert.Equal(t, models.NewComment{Content: "sebuah comment", ThreadID: "thread-1", Owner: "user-1"}, comment)

	_, err = NewComment(decode(t, `{}`), "thread-1", "user-1")
	assert.ErrorIs(t, err, ErrMissingProperty)

	reply, err := NewReply(decode(t, `{"content":"sebuah balasan"}`), "comment-1", "user-2")
	require.NoError(t, err)
	assert.Equal(t, models.NewReply{Content: "sebuah balasan", CommentID: "comment-1", Owner: "user-2"}, reply)

	_, err = NewReply(decode(t, `{"content":["a"]}`), "comment-1", "user-2")
	assert.ErrorIs(t, err, ErrWrongType)
}

func TestRegisterUser(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		body    string
		wantErr bool
		kind    error
	}{
		{"valid", `{"username":"dicoding","password":"secret","fullname":"Dicoding Indonesia"}`, false, nil},
		{"missing fullname", `{"username":"dicoding","password":"secret"}`, true, ErrMissingProperty},
		{"numeric password", `{"username":"dicoding","password":123,"fullname":"D"}`, true, ErrWrongType},
		{"restricted character", `{"username":"dico ding","password":"secret","fullname":"D"}`, true, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := RegisterUser(decode(t, tt.body))
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			assert.True(t, models.IsCode(err, models.CodeValidation))
			if tt.kind != nil {
				assert.ErrorIs(t, err, tt.kind)
			}
		})
	}
}

func TestUserLoginAndRefreshToken(t *testing.T) {
	t.Parallel()

	login, err := UserLogin(decode(t, `{"username":"dicoding","password":"secret"}`))
	require.NoError(t, err)
	assert.Equal(t, "dicoding", login.Username)

	_, err = UserLogin(decode(t, `{"username":"dicoding"}`))
	assert.ErrorIs(t, err, ErrMissingProperty)

	token, err := RefreshToken(decode(t, `{"refreshToken":"abc"}`))
	require.NoError(t, err)
	assert.Equal(t, "abc", token)

	_, err = RefreshToken(decode(t, `{}`))
	assert.ErrorIs(t, err, ErrMissingProperty)

	_, err = RefreshToken(decode(t, `{"refreshToken":1}`))
	assert.ErrorIs(t, err, ErrWrongType)
}
