package controller

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"hedgefront_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRespondErrorMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"lesson missing", util.ErrLessonNotFound, http.StatusNotFound},
		{"world missing", util.ErrWorldNotFound, http.StatusNotFound},
		{"submission missing", util.ErrSubmissionNotFound, http.StatusNotFound},
		{"world locked", util.ErrWorldLocked, http.StatusForbidden},
		{"lesson locked", util.ErrLessonLocked, http.StatusForbidden},
		{"resubmit over approved", util.ErrSubmissionApproved, http.StatusConflict},
		{"email taken", util.ErrEmailRegistered, http.StatusBadRequest},
		{"not a boss battle", util.ErrNotBossBattle, http.StatusBadRequest},
		{"bad grade decision", util.ErrInvalidGradeDecision, http.StatusBadRequest},
		{"bad credentials", util.ErrInvalidCredentials, http.StatusUnauthorized},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			respondError(c, tc.err)

			assert.Equal(t, tc.status, w.Code)
		})
	}
}
