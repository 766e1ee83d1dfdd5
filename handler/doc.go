// Package handler turns typed handler functions into http.HandlerFunc.
//
// A handler receives a Context and a request value populated by binders,
// and returns a Response that knows how to render itself:
//
//	type loginForm struct {
//		Email    string `form:"email"`
//		Password string `form:"password"`
//	}
//
//	func login(ctx handler.Context, req loginForm) handler.Response {
//		if err := check(req); err != nil {
//			return handler.Templ(views.LoginForm(err), handler.WithTarget("#login"))
//		}
//		return handler.Redirect("/dashboard")
//	}
//
//	r.Post("/auth/login", handler.Wrap(login,
//		handler.WithBinders[handler.Context, loginForm](binder.Form()),
//	))
//
// Responses adapt to DataStar requests: Templ patches elements through
// server-sent events and Redirect sends a client-side redirect script,
// while plain requests get regular HTML and 303 redirects.
package handler
