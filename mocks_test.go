package securelogin

import (
	"context"

	"github.com/goliatone/go-router"
)

// stubContext is a minimal behavioral router.Context for middleware
// tests: headers in, recorded status and JSON body out.
type stubContext struct {
	ctx        context.Context
	headers    map[string]string
	locals     map[any]any
	nextCalled bool

	statusCode int
	jsonBody   any

	bindFunc func(i any) error
}

var _ router.Context = (*stubContext)(nil)

func newStubContext() *stubContext {
	return &stubContext{
		ctx:     context.Background(),
		headers: map[string]string{},
		locals:  map[any]any{},
	}
}

func (m *stubContext) Next() error {
	m.nextCalled = true
	return nil
}

func (m *stubContext) Context() context.Context {
	return m.ctx
}

func (m *stubContext) SetContext(ctx context.Context) {
	m.ctx = ctx
}

func (m *stubContext) Path() string   { return "/" }
func (m *stubContext) Method() string { return "GET" }
func (m *stubContext) Body() []byte   { return nil }

func (m *stubContext) Status(code int) router.Context {
	m.statusCode = code
	return m
}

func (m *stubContext) SendString(s string) error { return nil }
func (m *stubContext) Send(b []byte) error       { return nil }

func (m *stubContext) JSON(code int, val any) error {
	m.statusCode = code
	m.jsonBody = val
	return nil
}

func (m *stubContext) NoContent(code int) error {
	m.statusCode = code
	return nil
}

func (m *stubContext) Render(name string, bind any, layout ...string) error { return nil }

func (m *stubContext) Redirect(path string, status ...int) error { return nil }

func (m *stubContext) RedirectToRoute(name string, data router.ViewContext, status ...int) error {
	return nil
}

func (m *stubContext) RedirectBack(fallback string, status ...int) error { return nil }

func (m *stubContext) SetHeader(key, val string) router.Context {
	m.headers[key] = val
	return m
}

func (m *stubContext) Header(key string) string { return m.headers[key] }

func (m *stubContext) Get(key string, defaultValue any) any {
	if v, ok := m.locals[key]; ok {
		return v
	}
	return defaultValue
}

func (m *stubContext) GetBool(key string, defaultValue bool) bool { return defaultValue }
func (m *stubContext) GetInt(key string, def int) int             { return def }

func (m *stubContext) Set(key string, val any) {
	m.locals[key] = val
}

func (m *stubContext) Bind(i any) error {
	if m.bindFunc != nil {
		return m.bindFunc(i)
	}
	return nil
}

func (m *stubContext) BindJSON(i any) error  { return nil }
func (m *stubContext) BindXML(i any) error   { return nil }
func (m *stubContext) BindQuery(i any) error { return nil }

func (m *stubContext) CookieParser(i any) error { return nil }

func (m *stubContext) Cookie(cookie *router.Cookie) {}

func (m *stubContext) Cookies(key string, defaultValue ...string) string {
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return ""
}

func (m *stubContext) Param(key string, defaultValue ...string) string {
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return ""
}

func (m *stubContext) ParamsInt(key string, defaultValue int) int { return defaultValue }

func (m *stubContext) Query(key string, defaultValue string) string { return defaultValue }

func (m *stubContext) QueryInt(key string, defaultValue int) int { return defaultValue }

func (m *stubContext) Queries() map[string]string { return map[string]string{} }

func (m *stubContext) GetString(key string, defaultValue string) string {
	if v, ok := m.headers[key]; ok {
		return v
	}
	return defaultValue
}

func (m *stubContext) Locals(key any, value ...any) any {
	if len(value) > 0 {
		m.locals[key] = value[0]
	}
	return m.locals[key]
}

func (m *stubContext) OriginalURL() string { return "/" }

func (m *stubContext) OnNext(callback func() error) {}

func (m *stubContext) Referer() string { return "" }
