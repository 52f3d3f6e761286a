package main

import "log"

// authenticateRedacted logs the request without its password.
func authenticateRedacted(auth Authentication) (*AuthenticationResponse, error) {
	response, err := makeAuthenticationRequest(auth)
	if err != nil {
		log.Printf("unable to make authenticated request: incorrect authentication? %v", redact(auth))
		return nil, err
	}
	return response, nil
}

//taint:sanitizer
func redact(auth Authentication) Authentication {
	return Authentication{Username: auth.Username}
}
