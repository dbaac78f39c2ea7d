// Package s3 publishes provisioning artifacts to S3-compatible object storage.
//
// The master run can hand its worker join command to automation waiting on
// a bucket instead of requiring an operator to copy it off the node.
package s3
