// Package viz is the presentation side of the grid.
//
//   - [Scene]: the per-tile visual state, fed by the engine and queried by
//     hosts at draw time. It plays the dispersal tween.
//   - [Canvas]: a shaded cell canvas that rasterises pixel-space tiles into
//     terminal cells.
//   - [Theme]: background, tile and chrome colors.
package viz
