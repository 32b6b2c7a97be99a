package catalog

// SVG is the SVG element catalogue. Every kind uses the core.SVG strategy.
var SVG = Catalog{
	// animation
	svg("animate", "animate"),
	svg("animatemotion", "animateMotion"),
	svg("animatetransform", "animateTransform"),
	svg("discard", "discard"),
	svg("mpath", "mpath"),
	svg("set", "set"),

	// container
	svg("defs", "defs"),
	svg("marker", "marker"),
	svg("mask", "mask"),
	svg("pattern", "pattern"),
	svg("svg", "svg"),

	// descriptive
	svg("desc", "desc"),
	svg("metadata", "metadata"),
	svg("title", "title"),

	// filter primitives
	svg("feblend", "feBlend"),
	svg("fecolormatrix", "feColorMatrix"),
	svg("fecomponenttransfer", "feComponentTransfer"),
	svg("fecomposite", "feComposite"),
	svg("feconvolvematrix", "feConvolveMatrix"),
	svg("fediffuselighting", "feDiffuseLighting"),
	svg("fedisplacementmap", "feDisplacementMap"),
	svg("fedropshadow", "feDropShadow"),
	svg("feflood", "feFlood"),
	svg("fefunca", "feFuncA"),
	svg("fefuncb", "feFuncB"),
	svg("fefuncg", "feFuncG"),
	svg("fegaussianblur", "feGaussianBlur"),
	svg("feimage", "feImage"),
	svg("femerge", "feMerge"),
	svg("femergenode", "feMergeNode"),
	svg("femorphology", "feMorphology"),
	svg("feoffset", "feOffset"),
	svg("fespecularlighting", "feSpecularLighting"),
	svg("fetile", "feTile"),
	svg("feturbulence", "feTurbulence"),

	// font
	svg("font", "font"),

	// gradient
	svg("lineargradient", "linearGradient"),
	svg("radialgradient", "radialGradient"),
	svg("stop", "stop"),

	// light source
	svg("fedistantlight", "feDistantLight"),
	svg("fepointlight", "fePointLight"),
	svg("fespotlight", "feSpotLight"),

	// graphics and structure
	svg("a", "a"),
	svg("circle", "circle"),
	svg("ellipse", "ellipse"),
	svg("foreignobject", "foreignObject"),
	svg("g", "g"),
	svg("image", "image"),
	svg("line", "line"),
	svg("path", "path"),
	svg("polygon", "polygon"),
	svg("polyline", "polyline"),
	svg("rect", "rect"),
	svg("switch", "switch"),
	svg("symbol", "symbol"),
	svg("text", "text"),
	svg("textpath", "textPath"),
	svg("tspan", "tspan"),
	svg("use", "use"),

	// other
	svg("clippath", "clipPath"),
	svg("colorprofile", "color-profile"),
	svg("filter", "filter"),
	svg("script", "script"),
	svg("style", "style"),
	svg("view", "view"),
}

// HTML is a small catalogue of common HTML elements using core.Plain.
var HTML = Catalog{
	plain("div"),
	plain("span"),
	plain("p"),
	plain("a"),
	plain("img"),
	plain("ul"),
	plain("ol"),
	plain("li"),
	plain("button"),
	plain("input"),
	plain("label"),
	plain("form"),
	plain("table"),
	plain("tr"),
	plain("td"),
	plain("h1"),
	plain("h2"),
	plain("h3"),
	plain("section"),
	plain("header"),
	plain("footer"),
	plain("canvas"),
}
