// Package recovery unwinds enciphered .env content back to plaintext.
//
// Content may carry more than one layer of encryption, or a mixture of
// envelope lines and plaintext left behind by locking a file that already
// held an envelope line. Unwind peels layers in a bounded loop and salvages
// mixed content line by line. A line that cannot be deciphered is kept as
// it was; nothing is dropped.
package recovery
