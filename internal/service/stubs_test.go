package service

import (
	"context"
	"testing"

	"forumapi/internal/auth"
	"forumapi/internal/models"

	"github.com/stretchr/testify/require"
)

type userRepoStub struct {
	verifyAvailableFn func(context.Context, string) error
	addUserFn         func(context.Context, models.RegisterUser) (*models.AddedUser, error)
	getByUsernameFn   func(context.Context, string) (*models.User, error)
}

func (s *userRepoStub) VerifyAvailableUsername(ctx context.Context, username string) error {
	return s.verifyAvailableFn(ctx, username)
}
func (s *userRepoStub) AddUser(ctx context.Context, u models.RegisterUser) (*models.AddedUser, error) {
	return s.addUserFn(ctx, u)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		verifyAvailableFn: func(context.Context, string) error { return nil },
		addUserFn: func(_ context.Context, u models.RegisterUser) (*models.AddedUser, error) {
			return &models.AddedUser{ID: "user-1", Username: u.Username, Fullname: u.Fullname}, nil
		},
		getByUsernameFn: func(_ context.Context, username string) (*models.User, error) {
			return &models.User{ID: "user-1", Username: username, Password: "hashed:secret"}, nil
		},
	}
}

type authRepoStub struct {
	addTokenFn    func(context.Context, string) error
	checkTokenFn  func(context.Context, string) error
	deleteTokenFn func(context.Context, string) error
}

func (s *authRepoStub) AddToken(ctx context.Context, token string) error { return s.addTokenFn(ctx, token) }
func (s *authRepoStub) CheckTokenExists(ctx context.Context, token string) error {
	return s.checkTokenFn(ctx, token)
}
func (s *authRepoStub) DeleteToken(ctx context.Context, token string) error {
	return s.deleteTokenFn(ctx, token)
}

func noopAuthRepo() *authRepoStub {
	return &authRepoStub{
		addTokenFn:    func(context.Context, string) error { return nil },
		checkTokenFn:  func(context.Context, string) error { return nil },
		deleteTokenFn: func(context.Context, string) error { return nil },
	}
}

type threadRepoStub struct {
	addThreadFn    func(context.Context, models.NewThread) (*models.AddedThread, error)
	verifyExistsFn func(context.Context, string) error
	getByIDFn      func(context.Context, string) (*models.ThreadRow, error)
}

func (s *threadRepoStub) AddThread(ctx context.Context, t models.NewThread) (*models.AddedThread, error) {
	return s.addThreadFn(ctx, t)
}
func (s *threadRepoStub) VerifyThreadExists(ctx context.Context, id string) error {
	return s.verifyExistsFn(ctx, id)
}
func (s *threadRepoStub) GetThreadByID(ctx context.Context, id string) (*models.ThreadRow, error) {
	return s.getByIDFn(ctx, id)
}

func noopThreadRepo() *threadRepoStub {
	return &threadRepoStub{
		addThreadFn: func(_ context.Context, t models.NewThread) (*models.AddedThread, error) {
			return &models.AddedThread{ID: "thread-1", Title: t.Title, Owner: t.Owner}, nil
		},
		verifyExistsFn: func(context.Context, string) error { return nil },
		getByIDFn: func(_ context.Context, id string) (*models.ThreadRow, error) {
			return &models.ThreadRow{ID: id, Title: "title", Body: "body", Username: "dicoding"}, nil
		},
	}
}

type commentRepoStub struct {
	addCommentFn   func(context.Context, models.NewComment) (*models.AddedComment, error)
	verifyExistsFn func(context.Context, string, string) error
	verifyOwnerFn  func(context.Context, string, string) error
	deleteFn       func(context.Context, string) error
	listFn         func(context.Context, string) ([]models.CommentRow, error)
	isLikedFn      func(context.Context, string, string) (bool, error)
	addLikeFn      func(context.Context, string, string) error
	deleteLikeFn   func(context.Context, string, string) error
}

func (s *commentRepoStub) AddComment(ctx context.Context, c models.NewComment) (*models.AddedComment, error) {
	return s.addCommentFn(ctx, c)
}
func (s *commentRepoStub) VerifyCommentExists(ctx context.Context, commentID, threadID string) error {
	return s.verifyExistsFn(ctx, commentID, threadID)
}
func (s *commentRepoStub) VerifyCommentOwner(ctx context.Context, commentID, owner string) error {
	return s.verifyOwnerFn(ctx, commentID, owner)
}
func (s *commentRepoStub) DeleteComment(ctx context.Context, commentID string) error {
	return s.deleteFn(ctx, commentID)
}
func (s *commentRepoStub) GetCommentsByThreadID(ctx context.Context, threadID string) ([]models.CommentRow, error) {
	return s.listFn(ctx, threadID)
}
func (s *commentRepoStub) IsLiked(ctx context.Context, userID, commentID string) (bool, error) {
	return s.isLikedFn(ctx, userID, commentID)
}
func (s *commentRepoStub) AddLike(ctx context.Context, userID, commentID string) error {
	return s.addLikeFn(ctx, userID, commentID)
}
func (s *commentRepoStub) DeleteLike(ctx context.Context, userID, commentID string) error {
	return s.deleteLikeFn(ctx, userID, commentID)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		addCommentFn: func(_ context.Context, c models.NewComment) (*models.AddedComment, error) {
			return &models.AddedComment{ID: "comment-1", Content: c.Content, Owner: c.Owner}, nil
		},
		verifyExistsFn: func(context.Context, string, string) error { return nil },
		verifyOwnerFn:  func(context.Context, string, string) error { return nil },
		deleteFn:       func(context.Context, string) error { return nil },
		listFn:         func(context.Context, string) ([]models.CommentRow, error) { return nil, nil },
		isLikedFn:      func(context.Context, string, string) (bool, error) { return false, nil },
		addLikeFn:      func(context.Context, string, string) error { return nil },
		deleteLikeFn:   func(context.Context, string, string) error { return nil },
	}
}

type replyRepoStub struct {
	addReplyFn     func(context.Context, models.NewReply) (*models.AddedReply, error)
	verifyExistsFn func(context.Context, string, string) error
	verifyOwnerFn  func(context.Context, string, string) error
	deleteFn       func(context.Context, string) error
	listFn         func(context.Context, string) ([]models.ReplyRow, error)
}

func (s *replyRepoStub) AddReply(ctx context.Context, r models.NewReply) (*models.AddedReply, error) {
	return s.addReplyFn(ctx, r)
}
func (s *replyRepoStub) VerifyReplyExists(ctx context.Context, replyID, commentID string) error {
	return s.verifyExistsFn(ctx, replyID, commentID)
}
func (s *replyRepoStub) VerifyReplyOwner(ctx context.Context, replyID, owner string) error {
	return s.verifyOwnerFn(ctx, replyID, owner)
}
func (s *replyRepoStub) DeleteReply(ctx context.Context, replyID string) error {
	return s.deleteFn(ctx, replyID)
}
func (s *replyRepoStub) GetRepliesByThreadID(ctx context.Context, threadID string) ([]models.ReplyRow, error) {
	return s.listFn(ctx, threadID)
}

func noopReplyRepo() *replyRepoStub {
	return &replyRepoStub{
		addReplyFn: func(_ context.Context, r models.NewReply) (*models.AddedReply, error) {
			return &models.AddedReply{ID: "reply-1", Content: r.Content, Owner: r.Owner}, nil
		},
		verifyExistsFn: func(context.Context, string, string) error { return nil },
		verifyOwnerFn:  func(context.Context, string, string) error { return nil },
		deleteFn:       func(context.Context, string) error { return nil },
		listFn:         func(context.Context, string) ([]models.ReplyRow, error) { return nil, nil },
	}
}

// fakeHasher prefixes instead of hashing.
type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }
func (fakeHasher) Compare(hash, password string) error {
	if hash != "hashed:"+password {
		return auth.ErrPasswordMismatch
	}
	return nil
}

type tokenIssuerStub struct {
	verifyRefreshFn func(string) (auth.Identity, error)
}

func (tokenIssuerStub) CreateAccessToken(id auth.Identity) (string, error) { return "access:" + id.ID, nil }
func (tokenIssuerStub) CreateRefreshToken(id auth.Identity) (string, error) {
	return "refresh:" + id.ID, nil
}
func (s tokenIssuerStub) VerifyRefreshToken(token string) (auth.Identity, error) {
	if s.verifyRefreshFn != nil {
		return s.verifyRefreshFn(token)
	}
	return auth.Identity{ID: "user-1", Username: "dicoding"}, nil
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	require.True(t, models.IsCode(err, code), "expected %s, got %v", code, err)
}
