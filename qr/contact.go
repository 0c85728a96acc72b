package qr

import "strings"

// Contact is the contact information carried by a QR payload. Empty fields
// were absent from the payload.
type Contact struct {
	Name    string
	Phone   string
	Email   string
	Company string
	Title   string
	Website string
	Address string
}

// IsContact reports whether the payload is one of the contact formats
// ParseContact understands.
func IsContact(payload string) bool {
	trimmed := strings.TrimSpace(payload)
	return strings.HasPrefix(trimmed, "MECARD:") ||
		strings.HasPrefix(strings.ToUpper(trimmed), "BEGIN:VCARD")
}

// ParseContact parses a MECARD or vCard payload. Payloads in neither format
// return ok=false; a recognized format always parses, with unknown fields
// ignored.
func ParseContact(payload string) (Contact, bool) {
	trimmed := strings.TrimSpace(payload)
	switch {
	case strings.HasPrefix(trimmed, "MECARD:"):
		return parseMECARD(trimmed), true
	case strings.HasPrefix(strings.ToUpper(trimmed), "BEGIN:VCARD"):
		return parseVCard(trimmed), true
	}
	return Contact{}, false
}

// parseMECARD parses the semicolon-separated KEY:value pairs after the
// MECARD: prefix. MECARD names are "surname,given"; both orders appear in
// the wild so the comma is simply replaced with a space.
func parseMECARD(payload string) Contact {
	var c Contact

	body := strings.TrimPrefix(payload, "MECARD:")
	for _, field := range splitMECARDFields(body) {
		key, value, found := strings.Cut(field, ":")
		if !found {
			continue
		}
		value = strings.TrimSpace(value)
		switch strings.ToUpper(key) {
		case "N":
			c.Name = strings.TrimSpace(strings.ReplaceAll(value, ",", " "))
		case "TEL":
			if c.Phone == "" {
				c.Phone = value
			}
		case "EMAIL":
			if c.Email == "" {
				c.Email = value
			}
		case "ORG":
			c.Company = value
		case "URL":
			c.Website = value
		case "ADR":
			c.Address = value
		}
	}

	return c
}

// splitMECARDFields splits on unescaped semicolons and unescapes the
// MECARD backslash escapes for ; and \ inside values.
func splitMECARDFields(body string) []string {
	var fields []string
	var sb strings.Builder

	escaped := false
	for _, r := range body {
		switch {
		case escaped:
			sb.WriteRune(r)
			escaped = false
		case r == '\\':
			escaped = true
		case r == ';':
			if sb.Len() > 0 {
				fields = append(fields, sb.String())
				sb.Reset()
			}
		default:
			sb.WriteRune(r)
		}
	}
	if sb.Len() > 0 {
		fields = append(fields, sb.String())
	}

	return fields
}

// parseVCard parses the subset of vCard 3.0 properties that matter for a
// contact card. Property parameters (TEL;TYPE=WORK) are stripped before
// matching.
func parseVCard(payload string) Contact {
	var c Contact

	for _, line := range strings.Split(payload, "\n") {
		line = strings.TrimRight(line, "\r")
		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		value = strings.TrimSpace(value)

		// Drop property parameters, keep the property name.
		if i := strings.Index(key, ";"); i >= 0 {
			key = key[:i]
		}

		switch strings.ToUpper(strings.TrimSpace(key)) {
		case "FN":
			c.Name = value
		case "N":
			if c.Name == "" {
				c.Name = vcardStructuredName(value)
			}
		case "TEL":
			if c.Phone == "" {
				c.Phone = value
			}
		case "EMAIL":
			if c.Email == "" {
				c.Email = value
			}
		case "ORG":
			c.Company = strings.ReplaceAll(value, ";", " ")
		case "TITLE":
			c.Title = value
		case "URL":
			c.Website = value
		case "ADR":
			c.Address = vcardAddress(value)
		}
	}

	return c
}

// vcardStructuredName turns "Family;Given;Middle;;" into "Given Family".
func vcardStructuredName(value string) string {
	parts := strings.Split(value, ";")
	if len(parts) >= 2 && parts[1] != "" {
		return strings.TrimSpace(parts[1] + " " + parts[0])
	}
	return strings.TrimSpace(parts[0])
}

// vcardAddress joins the non-empty components of a structured ADR value.
func vcardAddress(value string) string {
	var parts []string
	for _, part := range strings.Split(value, ";") {
		if part = strings.TrimSpace(part); part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, ", ")
}
