package forms

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"Form title", "form-title"},
		{"  Hello,   World!  ", "hello-world"},
		{"Заметка 1", "zametka-1"},
		{"Тестовая заметка", "testovaya-zametka"},
		{"Обновлённая заметка", "obnovlyonnaya-zametka"},
		{"Щука, йод и хлеб", "schuka-jod-i-hleb"},
		{"Юла и ёж", "yula-i-yozh"},
		{"Пальто с подъездом", "palto-s-podezdom"},
		{"already-a-slug", "already-a-slug"},
		{"!!!", ""},
	}
	for _, tc := range cases {
		t.Run(tc.title, func(t *testing.T) {
			assert.Equal(t, tc.want, Slugify(tc.title))
		})
	}
}

func TestSlugifyTruncates(t *testing.T) {
	got := Slugify(strings.Repeat("a", 150))
	assert.Len(t, got, SlugMaxLength)
}

var slugShape = regexp.MustCompile(`^([a-z0-9_-]*[a-z0-9])?$`)

func TestSlugifyProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		title := rapid.String().Draw(t, "title")
		got := Slugify(title)

		if len(got) > SlugMaxLength {
			t.Fatalf("slug %q longer than %d", got, SlugMaxLength)
		}
		if !slugShape.MatchString(got) {
			t.Fatalf("slug %q for %q has unexpected characters", got, title)
		}
		if got != "" && !ValidSlug(got) {
			t.Fatalf("slug %q rejected by ValidSlug", got)
		}
	})
}

func TestSlugifyIsDeterministic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		title := rapid.StringMatching(`[A-Za-zА-Яа-я0-9 ,.!?]{1,60}`).Draw(t, "title")
		if Slugify(title) != Slugify(title) {
			t.Fatalf("slug for %q is not deterministic", title)
		}
	})
}

func TestValidSlug(t *testing.T) {
	assert.True(t, ValidSlug("note_slug-1"))
	assert.False(t, ValidSlug("with space"))
	assert.False(t, ValidSlug("слаг"))
	assert.False(t, ValidSlug(""))
}
