package util

import (
	"bufio"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSide(t *testing.T) {
	assert.Equal(t, 640, ParseSide("640", DefaultPNGWidth))
	assert.Equal(t, DefaultPNGWidth, ParseSide("", DefaultPNGWidth))
	assert.Equal(t, DefaultPNGWidth, ParseSide("abc", DefaultPNGWidth))
	assert.Equal(t, DefaultPNGWidth, ParseSide("-1", DefaultPNGWidth))
	assert.Equal(t, DefaultPNGHeight, ParseSide("100000", DefaultPNGHeight))
}

func TestValidateMimeType(t *testing.T) {
	mime, err := ValidateMimeType(bufio.NewReader(strings.NewReader("a,b\n1,2\n")), AllowedDatasetMimeTypes)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(mime, "text/plain"))

	mime, err = ValidateMimeType(bufio.NewReader(strings.NewReader("")), AllowedDatasetMimeTypes)
	require.NoError(t, err)
	assert.Empty(t, mime)

	_, err = ValidateMimeType(bufio.NewReader(strings.NewReader("%PDF-1.4\n")), AllowedDatasetMimeTypes)
	assert.True(t, errors.Is(err, ErrBinaryDataset))
}

func TestValidateMimeTypeKeepsData(t *testing.T) {
	r := bufio.NewReader(strings.NewReader("a,b\n"))
	_, err := ValidateMimeType(r, AllowedDatasetMimeTypes)
	require.NoError(t, err)

	line, err := r.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "a,b\n", line)
}

func TestHandleError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		err  error
		code int
	}{
		{fmt.Errorf("%w: radar", ErrUnknownOutput), http.StatusNotFound},
		{fmt.Errorf("%w: x", ErrInvalidInput), http.StatusBadRequest},
		{fmt.Errorf("%w: Profession", ErrColumnNotFound), http.StatusUnprocessableEntity},
		{fmt.Errorf("%w: empty", ErrNotRenderable), http.StatusUnprocessableEntity},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/api/charts/x", nil)

		HandleError(c, tt.err)
		assert.Equal(t, tt.code, w.Code, tt.err.Error())
	}
}
