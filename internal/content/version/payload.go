// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package version

import (
	"github.com/taibuivan/folio/internal/platform/validate"
	"github.com/taibuivan/folio/pkg/textnorm"
)

const (
	maxTitleLength = 500
	maxTextLength  = 20000
)

var titleFields = []string{"titleEn", "titleNl"}

// Intro is the content of book, chapter and section versions.
type Intro struct {
	TitleEn string `json:"titleEn"`
	TitleNl string `json:"titleNl"`
	IntroEn string `json:"introEn"`
	IntroNl string `json:"introNl"`
}

func (intro Intro) Fields() Fields {
	return Fields{TitleEn: intro.TitleEn, TitleNl: intro.TitleNl, TextEn: intro.IntroEn, TextNl: intro.IntroNl}
}

func (intro Intro) Normalized() Intro {
	return introFromFields(normalize(intro.Fields()))
}

func (intro Intro) Validate(v *validate.Validator) {
	validateFields(v, intro.Fields(), "introEn", "introNl")
}

func introFromFields(f Fields) Intro {
	return Intro{TitleEn: f.TitleEn, TitleNl: f.TitleNl, IntroEn: f.TextEn, IntroNl: f.TextNl}
}

// Body is the content of paragraph versions.
type Body struct {
	TitleEn   string `json:"titleEn"`
	TitleNl   string `json:"titleNl"`
	ContentEn string `json:"contentEn"`
	ContentNl string `json:"contentNl"`
}

func (body Body) Fields() Fields {
	return Fields{TitleEn: body.TitleEn, TitleNl: body.TitleNl, TextEn: body.ContentEn, TextNl: body.ContentNl}
}

func (body Body) Normalized() Body {
	return bodyFromFields(normalize(body.Fields()))
}

func (body Body) Validate(v *validate.Validator) {
	validateFields(v, body.Fields(), "contentEn", "contentNl")
}

func bodyFromFields(f Fields) Body {
	return Body{TitleEn: f.TitleEn, TitleNl: f.TitleNl, ContentEn: f.TextEn, ContentNl: f.TextNl}
}

// normalize cleans every field and lets a blank title take the other locale's.
func normalize(f Fields) Fields {
	return Fields{
		TitleEn: textnorm.Fallback(f.TitleEn, f.TitleNl),
		TitleNl: textnorm.Fallback(f.TitleNl, f.TitleEn),
		TextEn:  textnorm.Body(f.TextEn),
		TextNl:  textnorm.Body(f.TextNl),
	}
}

func validateFields(v *validate.Validator, f Fields, textEn, textNl string) {
	v.AtLeastOne(titleFields, f.TitleEn, f.TitleNl).
		MaxLen("titleEn", f.TitleEn, maxTitleLength).
		MaxLen("titleNl", f.TitleNl, maxTitleLength).
		MaxLen(textEn, f.TextEn, maxTextLength).
		MaxLen(textNl, f.TextNl, maxTextLength)
}
