// Package qr decodes QR codes found on card images and parses the contact
// payload formats they commonly carry, MECARD and vCard.
//
// A decoded contact is used to backfill fields the text pipeline missed,
// never to overwrite a field it found. Cards without a QR code are the
// normal case, so a failed decode is reported with ErrNoQRCode rather than
// treated as a pipeline failure.
package qr
