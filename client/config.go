package client

// Config holds Display settings. NewDisplay stores the Config it is
// given; neither field is read by Display or by the transport package's
// Dial functions.
type Config struct {
	// ConnectTimeoutSecs is a connect timeout in seconds. No Dial
	// function in this module applies it.
	ConnectTimeoutSecs int
	// DisableBigRequests names the BIG-REQUESTS extension setting. The
	// engine never negotiates BIG-REQUESTS, so request length is always
	// bounded by the core protocol's 16-bit length field.
	DisableBigRequests bool
}

// DefaultConfig mirrors damianoneill-net/v2/netconf/client's
// DefaultConfig. NewDisplay uses it when given a nil Config; a non-nil
// Config is used as-is, not merged with these defaults.
var DefaultConfig = &Config{
	ConnectTimeoutSecs: 5,
	DisableBigRequests: false,
}
