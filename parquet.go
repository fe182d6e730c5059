/*
Package parquet converts arrow arrays of fixed-width primitive values into
parquet data pages (version 1), and back.

Encoding

ArrayToPage produces a single page holding every slot of an array. The page
buffer is made of a 4 bytes little-endian length prefix, the definition levels
of the slots encoded with the RLE/Bit-Packed hybrid encoding, then the PLAIN
encoding of the non-null values. When a compression codec is given the whole
buffer is compressed as one unit.

Decoding

DecodePage reverses the transformation, ReadPage and Page.WriteTo frame pages
with their thrift header so they can be stored or sent over the network.

Tooling

The program available at ./cmd/parquet-page encodes text input into pages and
dumps the content of framed pages.
*/
package parquet
