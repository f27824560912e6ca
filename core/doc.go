// Package core contains the transport contracts, configuration, error envelope
// and observability runtime shared by Graph API provider packages. Provider
// and transport packages depend on core; core must not depend on them.
package core
