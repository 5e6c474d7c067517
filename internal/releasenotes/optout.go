package releasenotes

// optOutToken is the normalized form of the NONE token.
const optOutToken = "none"

// IsOptOut reports whether content consists of the NONE token alone, ignoring
// case, surrounding whitespace and HTML comments. Raw section text is
// accepted; it does not need to be cleaned first.
func IsOptOut(content string) bool {
	return normalize(stripComments(content)) == optOutToken
}
