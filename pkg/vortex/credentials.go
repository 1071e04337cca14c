package vortex

// Credentials derives the bearer token the service authenticates with from
// an account name and API key. The token and key live only here and in the
// transport's auth stage; String redacts them so credentials can never leak
// through logs or formatted errors.
type Credentials struct {
	account string
	apiKey  string
	token   string
}

// NewCredentials validates the account and API key and derives the token.
func NewCredentials(account, apiKey string) (*Credentials, error) {
	if account == "" {
		return nil, &ConfigError{Kind: MissingField, Field: "account", Reason: "must not be empty"}
	}
	if apiKey == "" {
		return nil, &ConfigError{Kind: MissingField, Field: "api_key", Reason: "must not be empty"}
	}
	return &Credentials{
		account: account,
		apiKey:  apiKey,
		token:   "account=" + account + "&api_key=" + apiKey,
	}, nil
}

// Account returns the account name. The key has no accessor.
func (c *Credentials) Account() string { return c.account }

func (c *Credentials) String() string {
	return "account=" + c.account + "&api_key=****"
}

// GoString keeps %#v output redacted as well.
func (c *Credentials) GoString() string { return c.String() }
