package httputil

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func paginationContext(query string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/v1/invoices"+query, nil)
	return c
}

func TestParsePagination(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantOffset int
		wantLimit  int
		wantErr    bool
	}{
		{"defaults", "", 0, 50, false},
		{"explicit values", "?offset=20&limit=10", 20, 10, false},
		{"max limit", "?limit=100", 0, 100, false},
		{"limit above cap", "?limit=101", 0, 0, true},
		{"zero limit", "?limit=0", 0, 0, true},
		{"negative offset", "?offset=-1", 0, 0, true},
		{"non-numeric offset", "?offset=abc", 0, 0, true},
		{"non-numeric limit", "?limit=abc", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offset, limit, err := ParsePagination(paginationContext(tt.query))

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.wantOffset, offset)
			assert.Equal(t, tt.wantLimit, limit)
		})
	}
}
