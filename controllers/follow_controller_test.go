package controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yatube/yatube/models"
)

func TestFollowIsIdempotent(t *testing.T) {
	db, r := newTestEnv(t)
	_, token := createUser(t, db, "mia")
	createUser(t, db, "leo")

	for i := 0; i < 2; i++ {
		w := doJSON(t, r, http.MethodPost, "/profile/leo/follow/", token, nil)
		require.Equal(t, http.StatusOK, w.Code)
	}

	var count int64
	require.NoError(t, db.Model(&models.Follow{}).Count(&count).Error)
	assert.Equal(t, int64(1), count, "following twice produces exactly one edge")
}

func TestNoSelfFollow(t *testing.T) {
	db, r := newTestEnv(t)
	_, token := createUser(t, db, "mia")

	w := doJSON(t, r, http.MethodPost, "/profile/mia/follow/", token, nil)
	require.Equal(t, http.StatusOK, w.Code, "self-follow is a silent no-op")

	var count int64
	require.NoError(t, db.Model(&models.Follow{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestUnfollowIsIdempotent(t *testing.T) {
	db, r := newTestEnv(t)
	follower, token := createUser(t, db, "mia")
	author, _ := createUser(t, db, "leo")
	require.NoError(t, db.Create(&models.Follow{UserID: follower.ID, AuthorID: author.ID}).Error)

	for i := 0; i < 2; i++ {
		w := doJSON(t, r, http.MethodPost, "/profile/leo/unfollow/", token, nil)
		require.Equal(t, http.StatusOK, w.Code)
	}

	var count int64
	require.NoError(t, db.Model(&models.Follow{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestFollowUnknownUser(t *testing.T) {
	db, r := newTestEnv(t)
	_, token := createUser(t, db, "mia")

	w := doJSON(t, r, http.MethodPost, "/profile/nobody/follow/", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodPost, "/profile/nobody/unfollow/", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFeedListsFollowedAuthorsOnly(t *testing.T) {
	db, r := newTestEnv(t)
	_, token := createUser(t, db, "mia")
	followed, _ := createUser(t, db, "leo")
	stranger, _ := createUser(t, db, "sam")

	createPost(t, db, followed, "from leo", nil)
	createPost(t, db, stranger, "from sam", nil)

	w := doJSON(t, r, http.MethodPost, "/profile/leo/follow/", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/follow/", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	items := itemsOf(t, dataOf(t, w))
	require.Len(t, items, 1)
	assert.Equal(t, "from leo", items[0].(map[string]interface{})["text"])
}

func TestFeedRequiresAuth(t *testing.T) {
	_, r := newTestEnv(t)

	w := doJSON(t, r, http.MethodGet, "/follow/", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
