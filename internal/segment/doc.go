// Package segment turns color frames into the binary foreground masks
// the labeling engine consumes.
//
// Two kinds of mask are produced: a general mask from grayscale
// thresholding of the whole frame, and per-family color masks from HSV
// range tests tuned to each coin material (copper, gold, bimetallic
// euro). Morphological opening and closing on the binary masks knock
// out speckle noise and close small holes before labeling.
package segment
