// Package novelpia implements providers.Source for novelpia.com. It is the only
// package that knows the site's endpoints, element classes and script
// literals, so a markup change upstream is fixed here and nowhere else.
package novelpia
