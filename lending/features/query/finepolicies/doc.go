// Package finepolicies lists the configured fine rates per category and the default rate.
package finepolicies
