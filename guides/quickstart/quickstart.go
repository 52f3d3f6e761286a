// full path: github.com/google/go-flow-taint/guides/quickstart
//
// Run the analyzer on this package with
//   taint -config taint-config.yaml ./guides/quickstart
// to see the password reach log.Printf in authenticate.
package main

import "log"

type Authentication struct {
	Username string
	Password string
}

//taint:source
func readPassword(user string) string {
	return "hunter2"
}

func authenticate(auth Authentication) (*AuthenticationResponse, error) {
	response, err := makeAuthenticationRequest(auth)
	if err != nil {
		log.Printf("unable to make authenticated request: incorrect authentication? %v", auth)
		return nil, err
	}
	return response, nil
}

func main() {
	auth := Authentication{Username: "gopher"}
	auth.Password = readPassword(auth.Username)
	authenticate(auth)
	authenticateRedacted(auth)
}

// just a stub, to allow the code to compile
type AuthenticationResponse struct{}

// just a stub, to allow the code to compile
func makeAuthenticationRequest(Authentication) (*AuthenticationResponse, error) { return nil, nil }
