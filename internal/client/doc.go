// Package client talks to the promptdesk HTTP API.
//
// A Client is a slugfield.Backend backed by the lookup endpoints, so a
// slugfield.Field in a terminal checks identifiers against the same store
// the admin writes to:
//
//	c, err := client.New("http://localhost:8080")
//	if err != nil {
//	    return err
//	}
//	field := slugfield.New(c, slugfield.Target{Resource: "prompts", Field: "id"})
//	defer field.Close()
//
// Non-2xx answers come back as *APIError carrying the server's message.
package client
