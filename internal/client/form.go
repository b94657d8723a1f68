package client

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/MrSnakeDoc/toolshelf/internal/domain"
)

// DefaultLanguage is applied when the form leaves language blank.
const DefaultLanguage = "English"

// MaxDescriptionLength caps the short description, counted in characters.
const MaxDescriptionLength = 280

// ErrInvalidForm is wrapped by every form validation failure.
var ErrInvalidForm = errors.New("invalid form")

// Form holds the values of the create and edit form.
type Form struct {
	Name             string `validate:"required"`
	URL              string `validate:"required"`
	ShortDescription string `validate:"max=280"`
	Category         string
	Pricing          string
	Tags             []string
	Featured         bool
	Language         string
}

var formValidator = validator.New()

// ParseTags splits a comma separated tag input, dropping blanks.
func ParseTags(raw string) []string {
	tags := []string{}
	for _, part := range strings.Split(raw, ",") {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// FormFromTool pre-fills a form for editing t.
func FormFromTool(t domain.Tool) Form {
	return Form{
		Name:             t.Name,
		URL:              t.URL,
		ShortDescription: t.ShortDescription,
		Category:         t.Category,
		Pricing:          t.Pricing,
		Tags:             append([]string{}, t.Tags...),
		Featured:         t.Featured,
		Language:         t.Language,
	}
}

// Normalize trims every text field, drops blank tags and defaults the language.
func (f Form) Normalize() Form {
	out := Form{
		Name:             strings.TrimSpace(f.Name),
		URL:              strings.TrimSpace(f.URL),
		ShortDescription: strings.TrimSpace(f.ShortDescription),
		Category:         strings.TrimSpace(f.Category),
		Pricing:          strings.TrimSpace(f.Pricing),
		Tags:             ParseTags(strings.Join(f.Tags, ",")),
		Featured:         f.Featured,
		Language:         strings.TrimSpace(f.Language),
	}
	if out.Language == "" {
		out.Language = DefaultLanguage
	}
	return out
}

// patchRules holds the form rules for the fields a partial update sets.
type patchRules struct {
	Name             *string `validate:"omitnil,min=1"`
	URL              *string `validate:"omitnil,min=1"`
	ShortDescription *string `validate:"omitnil,max=280"`
}

// NormalizePatch trims every field p sets and defaults a blank language.
// Unset fields stay nil.
func NormalizePatch(p domain.Patch) domain.Patch {
	trim := func(v *string) *string {
		if v == nil {
			return nil
		}
		t := strings.TrimSpace(*v)
		return &t
	}
	out := p
	out.Name = trim(p.Name)
	out.URL = trim(p.URL)
	out.ShortDescription = trim(p.ShortDescription)
	out.Category = trim(p.Category)
	out.Pricing = trim(p.Pricing)
	out.Language = trim(p.Language)
	if out.Language != nil && *out.Language == "" {
		lang := DefaultLanguage
		out.Language = &lang
	}
	if p.Tags != nil {
		tags := ParseTags(strings.Join(*p.Tags, ","))
		out.Tags = &tags
	}
	return out
}

// ValidatePatch applies the form rules to the fields the normalized patch
// sets: a set name or url must not be blank and a set description must fit
// in MaxDescriptionLength characters.
func ValidatePatch(p domain.Patch) error {
	n := NormalizePatch(p)
	return validationError(formValidator.Struct(patchRules{
		Name:             n.Name,
		URL:              n.URL,
		ShortDescription: n.ShortDescription,
	}))
}

// Validate checks the normalized form: name and url are required and the
// description must fit in MaxDescriptionLength characters.
func (f Form) Validate() error {
	return validationError(formValidator.Struct(f.Normalize()))
}

func validationError(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fe.Field()+" ("+fe.Tag()+")")
		}
		return &FormError{Fields: fields}
	}
	return err
}

// FormError lists the fields that failed validation.
type FormError struct {
	Fields []string
}

func (e *FormError) Error() string {
	return ErrInvalidForm.Error() + ": " + strings.Join(e.Fields, ", ")
}

func (e *FormError) Unwrap() error { return ErrInvalidForm }

// CreateInput converts the normalized form to a create request.
func (f Form) CreateInput() domain.CreateInput {
	n := f.Normalize()
	return domain.CreateInput{
		Name:             n.Name,
		URL:              n.URL,
		ShortDescription: n.ShortDescription,
		Category:         n.Category,
		Pricing:          n.Pricing,
		Tags:             n.Tags,
		Featured:         n.Featured,
		Language:         n.Language,
	}
}

// Patch converts the normalized form to a full update: every field is sent.
func (f Form) Patch() domain.Patch {
	n := f.Normalize()
	return domain.Patch{
		Name:             &n.Name,
		URL:              &n.URL,
		ShortDescription: &n.ShortDescription,
		Category:         &n.Category,
		Pricing:          &n.Pricing,
		Tags:             &n.Tags,
		Featured:         &n.Featured,
		Language:         &n.Language,
	}
}
