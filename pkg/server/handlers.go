package server

import (
	"errors"
	"fmt"
	"html"
	"net/http"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/goliatone/go-formsubmit/pkg/model"
)

// errorBody is the failure shape clients read the message from.
type errorBody struct {
	Error string `json:"error"`
}

type resultBody struct {
	Result string `json:"result"`
}

func (s *Server) createComment(c echo.Context) error {
	var in model.Payload
	if err := c.Bind(&in); err != nil {
		return err
	}

	clean := model.NewPayload(s.fields.Len())
	for _, name := range s.fields.Names() {
		value, _ := in.Get(name)
		clean.Set(name, s.sanitize(value))
	}
	if err := validateSubmission(s.fields, clean); err != nil {
		var verrs validation.Errors
		if errors.As(err, &verrs) {
			return echo.NewHTTPError(http.StatusBadRequest, validationMessage(verrs)).SetInternal(err)
		}
		return err
	}

	comment := Comment{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
	}
	for _, name := range clean.Names() {
		value, _ := clean.Get(name)
		switch name {
		case "name":
			comment.Name = value
		case "email":
			comment.Email = value
		case "content":
			comment.Content = value
		default:
			if comment.Fields == nil {
				comment.Fields = make(map[string]string)
			}
			comment.Fields[name] = value
		}
	}
	if err := s.store.Add(comment); err != nil {
		return fmt.Errorf("server: store comment: %w", err)
	}
	return c.JSON(http.StatusOK, resultBody{Result: "OK"})
}

func (s *Server) listComments(c echo.Context) error {
	comments, err := s.store.List()
	if err != nil {
		return fmt.Errorf("server: list comments: %w", err)
	}
	return c.JSON(http.StatusOK, comments)
}

func (s *Server) index(c echo.Context) error {
	comments, err := s.store.List()
	if err != nil {
		return fmt.Errorf("server: list comments: %w", err)
	}
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(http.StatusOK)
	return s.page.Render(c.Response(), PageData{
		Title:    s.title,
		Fields:   s.fields,
		Comments: comments,
		WASM:     s.wasm,
	})
}

// sanitize strips markup and returns plain text; the page template escapes
// it again on output.
func (s *Server) sanitize(value string) string {
	return strings.TrimSpace(html.UnescapeString(s.sanitizer.Sanitize(value)))
}

// handleError answers every failure with an errorBody. HTTP errors keep
// their status and message; anything else is a 500 with a generic message.
func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		s.logger.Printf("error after response committed: %v", err)
		return
	}

	status := http.StatusInternalServerError
	message := http.StatusText(status)

	var he *echo.HTTPError
	if errors.As(err, &he) {
		status = he.Code
		message = fmt.Sprint(he.Message)
		if he.Internal != nil {
			s.logger.Printf("%s %s: %d: %v", c.Request().Method, c.Request().URL.Path, status, he.Internal)
		}
	} else {
		s.logger.Printf("%s %s: %v", c.Request().Method, c.Request().URL.Path, err)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = c.JSON(status, errorBody{Error: message})
	}
	if err != nil {
		s.logger.Printf("write error response: %v", err)
	}
}
