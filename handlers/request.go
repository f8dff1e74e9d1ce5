package handlers

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"asst/utils"

	"github.com/gin-gonic/gin"
)

// maxUploadBytes bounds multipart bodies carrying images.
const maxUploadBytes = 10 << 20

// pageParam reads ?page=, defaulting to 1.
func pageParam(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// isJSON reports whether the request body is JSON.
func isJSON(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), gin.MIMEJSON)
}

// formValues flattens a JSON object or a form body into string values.
// JSON booleans become "true"/"false" and numbers keep their text.
func formValues(c *gin.Context) (map[string]string, error) {
	values := map[string]string{}
	if isJSON(c) {
		var raw map[string]any
		if err := c.ShouldBindJSON(&raw); err != nil {
			return nil, err
		}
		for k, v := range raw {
			switch t := v.(type) {
			case nil:
			case string:
				values[k] = t
			case float64:
				values[k] = strconv.FormatFloat(t, 'f', -1, 64)
			default:
				values[k] = fmt.Sprint(t)
			}
		}
		return values, nil
	}
	if err := c.Request.ParseMultipartForm(maxUploadBytes); err != nil && err != http.ErrNotMultipart {
		return nil, err
	}
	for k, v := range c.Request.PostForm {
		if len(v) > 0 {
			values[k] = v[0]
		}
	}
	return values, nil
}

// optionalFile opens an uploaded file, returning nil when the field is absent.
// The caller closes the returned reader.
func optionalFile(c *gin.Context, field string) (io.ReadCloser, string, error) {
	header, err := c.FormFile(field)
	if err == http.ErrMissingFile || err == http.ErrNotMultipart {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", err
	}
	f, err := header.Open()
	if err != nil {
		return nil, "", err
	}
	return f, header.Filename, nil
}

func badBody(c *gin.Context, err error) {
	utils.RespondError(c, utils.BadRequest("Invalid request: "+err.Error()))
}
