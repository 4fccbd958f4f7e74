// Package urls holds the named routes of the HTML site and resolves them
// to paths, so handlers and templates never hard-code a URL.
package urls

import (
	"fmt"
	"net/url"
	"strings"
)

// Route names, namespaced like "<app>:<view>".
const (
	Home    = "notes:home"
	List    = "notes:list"
	Add     = "notes:add"
	Detail  = "notes:detail"
	Edit    = "notes:edit"
	Delete  = "notes:delete"
	Success = "notes:success"

	Login  = "users:login"
	Logout = "users:logout"
	Signup = "users:signup"
)

// SlugParam is the chi URL parameter carrying a note slug.
const SlugParam = "slug"

// slugSegment restricts slug parameters to what a slug may contain.
const slugSegment = "{" + SlugParam + ":[-a-zA-Z0-9_]+}"

type route struct {
	pattern string // chi pattern
	format  string // fmt template for Reverse
}

var routes = map[string]route{
	Home:    {"/", "/"},
	List:    {"/notes/", "/notes/"},
	Add:     {"/add/", "/add/"},
	Detail:  {"/note/" + slugSegment + "/", "/note/%s/"},
	Edit:    {"/edit/" + slugSegment + "/", "/edit/%s/"},
	Delete:  {"/delete/" + slugSegment + "/", "/delete/%s/"},
	Success: {"/done/", "/done/"},

	Login:  {"/auth/login/", "/auth/login/"},
	Logout: {"/auth/logout/", "/auth/logout/"},
	Signup: {"/auth/signup/", "/auth/signup/"},
}

// Pattern returns the chi route pattern registered for name.
func Pattern(name string) string {
	r, ok := routes[name]
	if !ok {
		panic(fmt.Sprintf("urls: no route named %q", name))
	}
	return r.pattern
}

// Reverse builds the path for a named route. It panics when the name is
// unknown or the number of args does not match, since both are
// programming errors.
func Reverse(name string, args ...string) string {
	r, ok := routes[name]
	if !ok {
		panic(fmt.Sprintf("urls: no route named %q", name))
	}
	if want := strings.Count(r.format, "%s"); want != len(args) {
		panic(fmt.Sprintf("urls: route %q takes %d args, got %d", name, want, len(args)))
	}
	escaped := make([]interface{}, len(args))
	for i, a := range args {
		escaped[i] = url.PathEscape(a)
	}
	return fmt.Sprintf(r.format, escaped...)
}
