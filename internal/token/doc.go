// Package token builds HS256 JWT fixtures for the mcp-guard test
// environment. The generator only signs; verification is out of scope
// because the fixture is consumed as an opaque credential string by
// test harnesses.
package token
