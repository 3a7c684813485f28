// Package s3 serves Magpie property tables from an S3 bucket. Table objects
// follow the same naming rules as the local directory source, so a dataset
// synced with DownloadDataset keeps working offline. Unit metadata comes
// from a README object in the bucket or, for datasets without one, from a
// DynamoDB unit registry.
package s3
