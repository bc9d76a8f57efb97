// Package cookie carries one-shot admin notices across redirects.
//
// A notice is JSON encoded and signed with HMAC-SHA256 before it is stored.
// Reading a notice deletes the cookie, so it is shown exactly once:
//
//	notices, err := cookie.New(secret, cookie.WithSecure(true))
//	if err != nil {
//		return err
//	}
//
//	// after a successful POST
//	_ = notices.Set(w, cookie.Success("Prompt created."))
//	http.Redirect(w, r, "/admin/prompts/summarize", http.StatusSeeOther)
//
//	// on the next page
//	if n, ok := notices.Pop(w, r); ok {
//		render(n.Kind, n.Text)
//	}
//
// Tampered or malformed cookies are treated as absent.
package cookie
