// Package calc implements the dilution calculation.
//
// Steps are processed in ascending Order because each step starts from the
// residual the previous step left behind. Default steps dilute every
// pigment by a shared multiplier so the total drops by the step's target;
// the refill step adds its target volume back, split in proportion to each
// pigment's residual. The summary row receives the per-step totals and is
// never read as input.
package calc
