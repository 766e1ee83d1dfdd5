// Package cookie writes and reads the portal's cookies.
//
// Manager carries the cookie defaults (path, domain, SameSite, Secure) and
// one or more 32+ byte secrets. Plain cookies are used for values that page
// scripts and the edge gate must read as-is (the credential "token" cookie);
// encrypted cookies (AES-256-GCM, nonce prepended) hold the visitor id; flash
// cookies carry a one-shot JSON notice across a redirect and are deleted when
// read. Each secret is stretched into its AES key with HKDF-SHA-256, so every
// byte of it counts.
//
// The first secret encrypts; every secret is tried when decrypting, which
// allows rotation without logging visitors out.
package cookie
