// Package files stores the companion files of documents: private copies of
// the picked or scanned source files, one area per user.
//
// # Overview
//
// Storage is the contract used by the document service. LocalStorage keeps
// copies under <root>/documents/<userID>/ on the local filesystem and
// identifies them by absolute path. S3Storage keeps them in a bucket under
// <prefix>/documents/<userID>/ and identifies them by s3://bucket/key URIs.
//
// Typical Usage
//
//	st := files.NewLocalStorage(dataDir)
//	uri, _ := st.Import(ctx, userID, "/tmp/picked.pdf", "1718000000000.pdf")
//	_ = st.Remove(ctx, uri)
package files
