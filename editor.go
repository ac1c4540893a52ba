package skateshare

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/eringen/skateshare/pagination"
	"github.com/eringen/skateshare/views"
)

// Editor field keys used in EditorState.Errors.
const (
	fieldTitle   = "title"
	fieldContent = "content"
	fieldImage   = "image"
	fieldForm    = "form"
)

// EditorState is the state of the "share a memory" dialog between requests.
type EditorState struct {
	Open           bool
	ShowValidation bool
	Title          string
	Content        string
	Errors         map[string]string
	Preview        *views.ImagePreview
}

func (s *EditorState) fail(field, msg string) {
	if s.Errors == nil {
		s.Errors = make(map[string]string)
	}
	s.Errors[field] = msg
}

// Validate checks that title and content are filled in and records an
// error for each missing field.
func (s *EditorState) Validate() bool {
	ok := true
	if strings.TrimSpace(s.Title) == "" {
		s.fail(fieldTitle, "Please give your memory a title.")
		ok = false
	}
	if strings.TrimSpace(s.Content) == "" {
		s.fail(fieldContent, "Please tell us a little about it.")
		ok = false
	}
	return ok
}

func (s EditorState) view(limit int, cancelURL, csrf string) views.Editor {
	return views.Editor{
		Open:           s.Open,
		ShowValidation: s.ShowValidation,
		Title:          s.Title,
		Content:        s.Content,
		TitleError:     s.Errors[fieldTitle],
		ContentError:   s.Errors[fieldContent],
		ImageError:     s.Errors[fieldImage],
		FormError:      s.Errors[fieldForm],
		Limit:          limit,
		CancelURL:      cancelURL,
		CSRFToken:      csrf,
		Preview:        s.Preview,
	}
}

// imageErrorMessage maps image processing errors to a message for the
// editor. It returns "" for errors that are not the uploader's fault.
func (a *App) imageErrorMessage(err error) string {
	switch {
	case errors.Is(err, ErrImageTooLarge):
		return fmt.Sprintf("That image is too large (max %dMB and %d megapixels).",
			a.Config.MaxUploadBytes>>20, MaxImagePixels/1_000_000)
	case errors.Is(err, ErrUnsupportedImage):
		return "Please choose a JPEG, PNG, GIF, WebP or BMP image."
	default:
		return ""
	}
}

// formImage reads the optional "image" upload. It returns nil when no file
// was chosen.
func (a *App) formImage(c echo.Context) (*PostImage, error) {
	fh, err := c.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if fh.Size == 0 && fh.Filename == "" {
		return nil, nil
	}
	return a.readUpload(fh)
}

func (a *App) readUpload(fh *multipart.FileHeader) (*PostImage, error) {
	if fh.Size > a.Config.MaxUploadBytes {
		return nil, ErrImageTooLarge
	}
	src, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()
	img, err := ProcessImage(src, a.Config.MaxUploadBytes)
	if err != nil {
		return nil, err
	}
	return &img, nil
}

// handleCreatePost submits the editor. On success the visitor is sent back
// to the first page with the current page size; on validation failure the
// dialog is shown again with the typed values and error messages.
func (a *App) handleCreatePost(c echo.Context) error {
	_, limit := pagination.Parse("", c.FormValue("limit"), a.Config.DefaultPageLimit)

	state := EditorState{
		Open:    true,
		Title:   c.FormValue("title"),
		Content: c.FormValue("content"),
	}

	if !a.postLimiter.Allow(c.RealIP()) {
		state.ShowValidation = true
		state.fail(fieldForm, "You are posting too quickly. Please wait a minute and try again.")
		return a.renderHome(c, http.StatusTooManyRequests, 1, limit, state)
	}

	valid := state.Validate()

	img, err := a.formImage(c)
	if err != nil {
		msg := a.imageErrorMessage(err)
		if msg == "" {
			return err
		}
		state.fail(fieldImage, msg)
		valid = false
	}

	if !valid {
		state.ShowValidation = true
		return a.renderHome(c, http.StatusUnprocessableEntity, 1, limit, state)
	}

	created, err := a.Posts.CreatePost(c.Request().Context(), NewPost{
		Title:   state.Title,
		Content: state.Content,
		Image:   img,
	})
	if errors.Is(err, ErrInvalidPost) {
		state.ShowValidation = true
		state.Validate()
		return a.renderHome(c, http.StatusUnprocessableEntity, 1, limit, state)
	}
	if err != nil {
		return err
	}

	c.Logger().Infof("post %s created", created.ID)
	return c.Redirect(http.StatusSeeOther, ListURL("/", 1, limit, false))
}

// handlePreview turns a chosen image into the inline preview shown in the
// editor before the post is submitted.
func (a *App) handlePreview(c echo.Context) error {
	img, err := a.formImage(c)
	if err != nil {
		msg := a.imageErrorMessage(err)
		if msg == "" {
			return err
		}
		return RenderStatus(c, http.StatusUnprocessableEntity, a.Views.Preview(views.ImagePreview{Error: msg}))
	}
	if img == nil {
		return RenderStatus(c, http.StatusUnprocessableEntity, a.Views.Preview(views.ImagePreview{Error: "No image selected"}))
	}
	return Render(c, a.Views.Preview(*imagePreview(*img)))
}
