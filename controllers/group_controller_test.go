package controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yatube/yatube/models"
)

func TestCreateGroupRequiresAdmin(t *testing.T) {
	db, r := newTestEnv(t)
	_, token := createUser(t, db, "mia")

	w := doJSON(t, r, http.MethodPost, "/api/v1/groups", token, map[string]interface{}{
		"title": "Nature",
		"slug":  "nature",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCreateGroup(t *testing.T) {
	db, r := newTestEnv(t)
	_, token := createUser(t, db, "admin")

	w := doJSON(t, r, http.MethodPost, "/api/v1/groups", token, map[string]interface{}{
		"title":       "Nature",
		"slug":        "Nature",
		"description": "all things outdoors",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	group := dataOf(t, w)["group"].(map[string]interface{})
	assert.Equal(t, "nature", group["slug"], "slugs are normalized to lower case")

	// Duplicate slug is rejected.
	w = doJSON(t, r, http.MethodPost, "/api/v1/groups", token, map[string]interface{}{
		"title": "Other",
		"slug":  "nature",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	errs := dataOf(t, w)["errors"].(map[string]interface{})
	assert.Contains(t, errs, "slug")

	// Malformed slug is rejected.
	w = doJSON(t, r, http.MethodPost, "/api/v1/groups", token, map[string]interface{}{
		"title": "Other",
		"slug":  "no spaces allowed",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	errs = dataOf(t, w)["errors"].(map[string]interface{})
	assert.Contains(t, errs, "slug")
}

func TestDeleteGroupDetachesPosts(t *testing.T) {
	db, r := newTestEnv(t)
	_, adminToken := createUser(t, db, "admin")
	author, _ := createUser(t, db, "leo")
	group := createGroup(t, db, "Nature", "nature")
	post := createPost(t, db, author, "grouped", &group.ID)

	w := doJSON(t, r, http.MethodDelete, "/api/v1/groups/nature", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var groups int64
	require.NoError(t, db.Model(&models.Group{}).Count(&groups).Error)
	assert.Zero(t, groups)

	// The post survives with its group reference cleared.
	var stored models.Post
	require.NoError(t, db.First(&stored, post.ID).Error)
	assert.Nil(t, stored.GroupID)
	assert.Equal(t, "grouped", stored.Text)
}

func TestListGroups(t *testing.T) {
	db, r := newTestEnv(t)
	createGroup(t, db, "Tech", "tech")
	createGroup(t, db, "Nature", "nature")

	w := doJSON(t, r, http.MethodGet, "/api/v1/groups", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	groups := dataOf(t, w)["groups"].([]interface{})
	require.Len(t, groups, 2)
	assert.Equal(t, "Nature", groups[0].(map[string]interface{})["title"], "groups are listed by title")
}
