package jwpub

import (
	"bytes"
	"compress/flate"
	"compress/zlib"
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"jwsched/internal/puberr"
)

// contentMask is the fixed 32-byte XOR mask applied to the publication tag
// hash during key derivation, stored the way the format embeds it.
const contentMask = "MTFjYmI1NTg3ZTMyODQ2ZDRjMjY3OTBjNjMzZGEyODlmNjZmZTU4NDJhM2E1ODVjZTFiYzNhMjk0YWY1YWRhNw=="

// keyMaterial is the per-publication AES key and IV. Valid for one issue.
type keyMaterial struct {
	key []byte
	iv  []byte
}

// deriveKeyMaterial computes the AES-128 key and IV for a publication tag
// of the form "<mepsLanguageIndex>_<symbol>_<year>_<issueTag>".
func deriveKeyMaterial(tag string) (keyMaterial, error) {
	maskHex, err := base64.StdEncoding.DecodeString(contentMask)
	if err != nil {
		return keyMaterial{}, puberr.Wrap(puberr.CodeDecryptionFailed, "decode content mask", err)
	}
	mask, err := hex.DecodeString(string(maskHex))
	if err != nil {
		return keyMaterial{}, puberr.Wrap(puberr.CodeDecryptionFailed, "decode content mask hex", err)
	}

	hash := sha256.Sum256([]byte(tag))
	xored := xorBytes(hash[:], mask)

	// The format specifies the split on the lowercase hex encoding: the
	// first 32 hex characters are the key, the rest the IV.
	hexed := hex.EncodeToString(xored)
	key, err := hex.DecodeString(hexed[:32])
	if err != nil {
		return keyMaterial{}, puberr.Wrap(puberr.CodeDecryptionFailed, "derive key", err)
	}
	iv, err := hex.DecodeString(hexed[32:])
	if err != nil {
		return keyMaterial{}, puberr.Wrap(puberr.CodeDecryptionFailed, "derive iv", err)
	}

	return keyMaterial{key: key, iv: iv}, nil
}

// xorBytes combines two buffers byte-wise, wrapping around the shorter one.
// Both are 32 bytes in practice.
func xorBytes(a, b []byte) []byte {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	n := max(len(a), len(b))
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		out[i] = a[i%len(a)] ^ b[i%len(b)]
	}
	return out
}

// decode decrypts and inflates one Document content blob to HTML bytes.
// When the AES + raw-DEFLATE path fails, the blob is retried as plain
// zlib-wrapped data: some publications store their content uncompressed by
// the cipher, and the fallback keeps those readable. Fallback success says
// nothing about the key.
func (km keyMaterial) decode(blob []byte) ([]byte, error) {
	plain, err := decryptAESCBC(blob, km.key, km.iv)
	if err == nil {
		var out []byte
		out, err = inflateRaw(plain)
		if err == nil {
			return out, nil
		}
	}

	if out, zlibErr := inflateZlib(blob); zlibErr == nil {
		return out, nil
	}

	return nil, puberr.Wrap(puberr.CodeDecryptionFailed, "decrypt document content", err)
}

// decryptAESCBC runs AES-128-CBC over data and strips PKCS#7 padding.
func decryptAESCBC(data, key, iv []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("build cipher: %w", err)
	}
	if len(data) == 0 || len(data)%aes.BlockSize != 0 {
		return nil, fmt.Errorf("ciphertext length %d is not a multiple of the block size", len(data))
	}

	plain := make([]byte, len(data))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plain, data)

	return stripPKCS7(plain)
}

func stripPKCS7(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, errors.New("empty plaintext")
	}
	pad := int(data[len(data)-1])
	if pad == 0 || pad > aes.BlockSize || pad > len(data) {
		return nil, errors.New("invalid padding")
	}
	for _, b := range data[len(data)-pad:] {
		if int(b) != pad {
			return nil, errors.New("invalid padding")
		}
	}
	return data[:len(data)-pad], nil
}

// inflateRaw decompresses a raw DEFLATE stream (no zlib wrapper).
func inflateRaw(data []byte) ([]byte, error) {
	r := flate.NewReader(bytes.NewReader(data))
	defer r.Close()
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("inflate: %w", err)
	}
	return out, nil
}

// inflateZlib decompresses a zlib-wrapped stream.
func inflateZlib(data []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open zlib stream: %w", err)
	}
	defer r.Close()
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("inflate zlib: %w", err)
	}
	return out, nil
}
