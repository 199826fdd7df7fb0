// Package document implements operations over arbitrarily shaped JSON
// objects. Client payloads and stored items have no static schema so they
// are handled as generic trees of maps, slices and scalars.
package document
