package model

import (
	"net/url"

	"github.com/lcabral/guestportal/internal/validate"
)

// JoinRequest holds the network-identifying parameters the access point
// forwards to the portal when it intercepts a client
type JoinRequest struct {
	ClientMAC   string `json:"client_mac"`
	ClientIP    string `json:"client_ip"`
	APMAC       string `json:"ap_mac"`
	SSID        string `json:"ssid"`
	RedirectURL string `json:"redirect"`
}

// JoinRequestFromQuery extracts a JoinRequest from login query parameters
func JoinRequestFromQuery(q url.Values) *JoinRequest {
	return &JoinRequest{
		ClientMAC:   q.Get("client_mac"),
		ClientIP:    q.Get("client_ip"),
		APMAC:       q.Get("ap_mac"),
		SSID:        q.Get("ssid"),
		RedirectURL: q.Get("redirect"),
	}
}

// Validate checks that all parameters are present and that the MAC and IP
// fields are well-formed. Returns ErrInvalidParams otherwise.
func (j *JoinRequest) Validate() error {
	if j.ClientMAC == "" || j.ClientIP == "" || j.APMAC == "" || j.SSID == "" || j.RedirectURL == "" {
		return ErrInvalidParams
	}
	if !validate.IsValidMAC(j.ClientMAC) || !validate.IsValidMAC(j.APMAC) {
		return ErrInvalidParams
	}
	if !validate.IsValidIP(j.ClientIP) {
		return ErrInvalidParams
	}
	return nil
}
