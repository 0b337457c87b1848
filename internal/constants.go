/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import "os"

const (
	UserAgent     = "swisspair/0.3.0 (+https://github.com/mikeb26/swisspair)"
	DefaultBucket = "bopmatic-swisspair-prod"
	BucketEnvVar  = "SWISSPAIR_BUCKET"

	// Boylston Chess Club
	BccUSCFAffiliateID = "A5000408"
)

// Bucket returns the S3 bucket used for the web cache and the round archive.
func Bucket() string {
	if b := os.Getenv(BucketEnvVar); b != "" {
		return b
	}
	return DefaultBucket
}
