// Package phpstan rewrites PHPStan NEON configuration files so their scan and
// exclude path lists reflect the directories that exist in the working tree.
//
// Only the parameters.paths and parameters.excludePaths blocks are touched;
// every other line of the configuration file passes through byte-for-byte.
package phpstan
